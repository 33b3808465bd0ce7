package htmldom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
)

var _ dom.Element = (*Element)(nil)

// Listener reacts to an event reaching an element.
type Listener func(target *Element, ev dom.Event)

// Method backs Element.Call.
type Method func(el *Element, args ...any) (any, error)

type Element struct {
	node    *html.Node
	doc     *Document
	root    dom.Root
	value   *string
	props   map[string]any
	methods map[string]Method
	on      map[string][]Listener
}

func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

func (e *Element) Attribute(name string) (string, bool) {
	return attr(e.node, name)
}

// SetAttribute replaces or adds an attribute.
func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) RemoveAttribute(name string) {
	kept := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			continue
		}
		kept = append(kept, a)
	}
	e.node.Attr = kept
}

// AddClass appends a class token when missing.
func (e *Element) AddClass(class string) {
	current, _ := e.Attribute("class")
	for _, c := range strings.Fields(current) {
		if c == class {
			return
		}
	}
	e.SetAttribute("class", strings.TrimSpace(current+" "+class))
}

func (e *Element) Text() (string, error) {
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String(), nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// Value follows the property, not the attribute, once it has been written.
func (e *Element) Value() (string, error) {
	if e.value != nil {
		return *e.value, nil
	}
	if e.node.DataAtom == atom.Textarea {
		return e.Text()
	}
	v, _ := e.Attribute("value")
	return v, nil
}

func (e *Element) SetValue(value string) error {
	e.value = &value
	return nil
}

// Dispatch fires ev on the element and bubbles it through ancestors, crossing
// shadow boundaries to the host.
func (e *Element) Dispatch(ev dom.Event) error {
	e.doc.record(e, ev)
	e.bubble(ev)
	return nil
}

func (e *Element) bubble(ev dom.Event) {
	n := e.node
	for n != nil {
		if w, ok := e.doc.elements[n]; ok {
			for _, l := range w.on[ev.Type] {
				l(e, ev)
			}
		}
		if n.Parent == nil {
			if s := e.doc.shadowOfFragment(n); s != nil {
				n = s.host
				continue
			}
		}
		n = n.Parent
	}
}

func (e *Element) Click() error {
	if _, disabled := e.Attribute("disabled"); disabled {
		return fmt.Errorf("element <%s> is disabled", e.TagName())
	}
	return e.Dispatch(dom.Event{Type: "click"})
}

func (e *Element) Focus() error {
	e.doc.active = e.node
	e.fire(dom.Event{Type: "focus"})
	return nil
}

func (e *Element) Blur() error {
	if e.doc.active == e.node {
		e.doc.active = nil
	}
	e.fire(dom.Event{Type: "blur"})
	return nil
}

// fire runs listeners on the element only, like focus and blur.
func (e *Element) fire(ev dom.Event) {
	e.doc.record(e, ev)
	for _, l := range e.on[ev.Type] {
		l(e, ev)
	}
}

// On registers a listener.
func (e *Element) On(eventType string, l Listener) {
	e.on[eventType] = append(e.on[eventType], l)
}

// Define registers a callable method path, e.g. "_flatpickr.setDate".
func (e *Element) Define(method string, fn Method) {
	e.methods[method] = fn
}

// SetProperty defines a JS property path.
func (e *Element) SetProperty(name string, value any) {
	e.props[name] = value
}

func (e *Element) Call(method string, args ...any) (any, error) {
	fn, ok := e.methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s on <%s>", ErrNoSuchMethod, method, e.TagName())
	}
	return fn(e, args...)
}

func (e *Element) Property(name string) (any, bool, error) {
	if v, ok := e.props[name]; ok {
		return v, true, nil
	}
	if name == "value" {
		v, err := e.Value()
		return v, true, err
	}
	return nil, false, nil
}

func (e *Element) ShadowRoot() dom.Root {
	s, ok := e.doc.shadows[e.node]
	if !ok || s.closed {
		return nil
	}
	return s
}

func (e *Element) ContentDocument() (dom.Document, error) {
	if e.node.DataAtom != atom.Iframe {
		return nil, ErrNotFrame
	}
	fd, err := e.doc.frame(e.node)
	if err != nil {
		return nil, err
	}
	return fd, nil
}

// Frame is the typed ContentDocument for fixtures.
func (e *Element) Frame() (*Document, error) {
	if e.node.DataAtom != atom.Iframe {
		return nil, ErrNotFrame
	}
	return e.doc.frame(e.node)
}

func (e *Element) Root() dom.Root {
	return e.root
}

func (e *Element) QuerySelector(selector string) (dom.Element, error) {
	el, err := e.doc.queryFirst(e.node, selector, e.root)
	if el == nil || err != nil {
		return nil, err
	}
	return el, nil
}

// Query is the typed fixture helper.
func (e *Element) Query(selector string) *Element {
	el, _ := e.doc.queryFirst(e.node, selector, e.root)
	return el
}

func (d *Document) shadowOfFragment(n *html.Node) *ShadowRoot {
	for _, s := range d.shadows {
		if s.node == n {
			return s
		}
	}
	return nil
}
