package rod

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
)

var (
	ErrCrossOrigin  = errors.New("cross-origin frame")
	ErrNoSuchMethod = errors.New("no such method")
	ErrNotFrame     = errors.New("element is not an iframe")
)

var (
	_ dom.Document   = (*Document)(nil)
	_ dom.HostLister = (*Document)(nil)
	_ dom.Root       = (*ShadowRoot)(nil)
	_ dom.HostLister = (*ShadowRoot)(nil)
	_ dom.Element    = (*Element)(nil)
)

// hostsJS lists elements with an open shadow root, and iframes, below this.
const hostsJS = `function () {
	const root = this.nodeType === Node.DOCUMENT_NODE || this.nodeType === Node.DOCUMENT_FRAGMENT_NODE ? this : document;
	return Array.from(root.querySelectorAll('*')).filter(e => e.shadowRoot || e.tagName === 'IFRAME');
}`

// Document is a live page, or a same-origin frame, seen through the dom port.
type Document struct {
	page *rod.Page
}

func NewDocument(page *rod.Page) *Document {
	return &Document{page: page}
}

func (d *Document) Kind() dom.RootKind     { return dom.RootDocument }
func (d *Document) Document() dom.Document { return d }
func (d *Document) Host() dom.Element      { return nil }

func (d *Document) ID() string {
	if d.page.FrameID != "" {
		return "frame-" + string(d.page.FrameID)
	}
	return "target-" + string(d.page.TargetID)
}

func (d *Document) QuerySelector(selector string) (dom.Element, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return d.wrap(els[0], d), nil
}

func (d *Document) QuerySelectorAll(selector string) ([]dom.Element, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return d.wrapAll(els, d), nil
}

func (d *Document) Hosts() ([]dom.Element, error) {
	els, err := d.page.ElementsByJS(rod.Eval(hostsJS))
	if err != nil {
		return nil, err
	}
	return d.wrapAll(els, d), nil
}

func (d *Document) ActiveElement() (dom.Element, error) {
	el, err := d.page.ElementByJS(rod.Eval(`() => document.activeElement || document.body`))
	if err != nil {
		return nil, fmt.Errorf("active element: %w", err)
	}
	return d.wrap(el, d), nil
}

func (d *Document) HasGlobal(name string) bool {
	res, err := d.page.Eval(`(path) => path.split('.').reduce((o, k) => o == null ? undefined : o[k], window) !== undefined`, name)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

func (d *Document) wrap(el *rod.Element, root dom.Root) *Element {
	return &Element{el: el, doc: d, root: root}
}

func (d *Document) wrapAll(els rod.Elements, root dom.Root) []dom.Element {
	out := make([]dom.Element, 0, len(els))
	for _, el := range els {
		out = append(out, d.wrap(el, root))
	}
	return out
}

// ShadowRoot is an open shadow root. node is the root itself as a rod element.
type ShadowRoot struct {
	id   string
	node *rod.Element
	host *Element
	doc  *Document
}

func (s *ShadowRoot) Kind() dom.RootKind     { return dom.RootShadow }
func (s *ShadowRoot) ID() string             { return s.id }
func (s *ShadowRoot) Document() dom.Document { return s.doc }
func (s *ShadowRoot) Host() dom.Element      { return s.host }

func (s *ShadowRoot) QuerySelector(selector string) (dom.Element, error) {
	els, err := s.node.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return s.doc.wrap(els[0], s), nil
}

func (s *ShadowRoot) QuerySelectorAll(selector string) ([]dom.Element, error) {
	els, err := s.node.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return s.doc.wrapAll(els, s), nil
}

func (s *ShadowRoot) Hosts() ([]dom.Element, error) {
	els, err := s.node.ElementsByJS(rod.Eval(hostsJS))
	if err != nil {
		return nil, err
	}
	return s.doc.wrapAll(els, s), nil
}

type Element struct {
	el   *rod.Element
	doc  *Document
	root dom.Root
}

func (e *Element) TagName() string {
	res, err := e.el.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

func (e *Element) Attribute(name string) (string, bool) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (e *Element) Text() (string, error) {
	return e.el.Text()
}

func (e *Element) Value() (string, error) {
	v, err := e.el.Property("value")
	if err != nil {
		return "", err
	}
	if v.Nil() {
		return "", nil
	}
	return v.Str(), nil
}

// SetValue goes through the prototype setter so framework-controlled inputs
// notice the change.
func (e *Element) SetValue(value string) error {
	_, err := e.el.Eval(`(v) => {
		const desc = Object.getOwnPropertyDescriptor(Object.getPrototypeOf(this), 'value');
		if (desc && desc.set) { desc.set.call(this, v) } else { this.value = v }
	}`, value)
	return err
}

func (e *Element) Dispatch(ev dom.Event) error {
	_, err := e.el.Eval(`(type, key) => {
		const init = { bubbles: true, cancelable: true, composed: true };
		const ev = key ? new KeyboardEvent(type, { ...init, key }) : new Event(type, init);
		this.dispatchEvent(ev);
	}`, ev.Type, ev.Key)
	return err
}

func (e *Element) Click() error {
	_, err := e.el.Eval(`() => {
		if (this.disabled) throw new Error('element is disabled');
		this.click();
	}`)
	return err
}

func (e *Element) Focus() error {
	return e.el.Focus()
}

func (e *Element) Blur() error {
	return e.el.Blur()
}

func (e *Element) Call(method string, args ...any) (any, error) {
	if args == nil {
		args = []any{}
	}
	res, err := e.el.Eval(`(path, args) => {
		const parts = path.split('.');
		const name = parts.pop();
		const target = parts.reduce((o, k) => o == null ? undefined : o[k], this);
		if (target == null || typeof target[name] !== 'function') throw new Error('no such method: ' + path);
		const out = target[name](...args);
		return out === undefined || out instanceof Node ? null : out;
	}`, method, args)
	if err != nil {
		if strings.Contains(err.Error(), "no such method") {
			return nil, fmt.Errorf("%w: %s on <%s>", ErrNoSuchMethod, method, e.TagName())
		}
		return nil, err
	}
	return res.Value.Val(), nil
}

// Property reads a dotted path. Dates come back as ISO strings.
func (e *Element) Property(name string) (any, bool, error) {
	res, err := e.el.Eval(`(path) => {
		let o = this;
		for (const k of path.split('.')) {
			if (o == null) return { ok: false };
			o = o[k];
		}
		if (o === undefined) return { ok: false };
		const plain = (v) => v instanceof Date ? v.toISOString() : v;
		return { ok: true, value: Array.isArray(o) ? o.map(plain) : plain(o) };
	}`, name)
	if err != nil {
		return nil, false, err
	}
	if !res.Value.Get("ok").Bool() {
		return nil, false, nil
	}
	return res.Value.Get("value").Val(), true, nil
}

// ShadowRoot only exposes open roots, like element.shadowRoot in a page.
func (e *Element) ShadowRoot() dom.Root {
	node, err := e.el.Describe(1, false)
	if err != nil || len(node.ShadowRoots) == 0 {
		return nil
	}
	sr := node.ShadowRoots[0]
	if sr.ShadowRootType != proto.DOMShadowRootTypeOpen {
		return nil
	}
	root, err := e.el.ShadowRoot()
	if err != nil {
		return nil
	}
	return &ShadowRoot{
		id:   fmt.Sprintf("shadow-%d", sr.BackendNodeID),
		node: root,
		host: e,
		doc:  e.doc,
	}
}

func (e *Element) ContentDocument() (dom.Document, error) {
	if e.TagName() != "iframe" {
		return nil, ErrNotFrame
	}
	res, err := e.el.Eval(`() => { try { return !!this.contentDocument } catch (e) { return false } }`)
	if err != nil {
		return nil, err
	}
	if !res.Value.Bool() {
		src, _ := e.Attribute("src")
		return nil, fmt.Errorf("%w: %s", ErrCrossOrigin, src)
	}
	frame, err := e.el.Frame()
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	return NewDocument(frame), nil
}

func (e *Element) Root() dom.Root {
	return e.root
}

func (e *Element) QuerySelector(selector string) (dom.Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return e.doc.wrap(els[0], e.root), nil
}
