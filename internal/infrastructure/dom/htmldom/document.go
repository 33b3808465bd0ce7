// Package htmldom is an in-memory implementation of the dom port on top of
// golang.org/x/net/html. It understands declarative shadow roots
// (<template shadowrootmode="open">) and srcdoc iframes, and lets fixtures
// attach listeners, methods, properties and window globals.
//
// Like a browser DOM it is not safe for concurrent mutation.
package htmldom

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
)

var (
	ErrCrossOrigin     = errors.New("cross-origin frame")
	ErrNotFrame        = errors.New("element is not an iframe")
	ErrNoSuchMethod    = errors.New("no such method")
	ErrInvalidSelector = errors.New("invalid selector")
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Root     = (*ShadowRoot)(nil)
)

// Record is one dispatched event, kept for assertions.
type Record struct {
	Target *Element
	Event  dom.Event
}

type Option func(*options)

type options struct {
	origin string
	frames map[string]string
}

// WithOrigin sets the document origin, e.g. "https://demo.local".
func WithOrigin(origin string) Option {
	return func(o *options) { o.origin = strings.TrimSuffix(origin, "/") }
}

// WithFrame registers markup served for an iframe src. It is only loadable when
// the src resolves to the document origin.
func WithFrame(src, markup string) Option {
	return func(o *options) { o.frames[src] = markup }
}

type Document struct {
	id       string
	node     *html.Node
	opts     options
	elements map[*html.Node]*Element
	shadows  map[*html.Node]*ShadowRoot
	frames   map[*html.Node]*Document
	globals  map[string]any
	active   *html.Node
	events   []Record
}

// Parse builds a document from markup.
func Parse(markup string, opts ...Option) (*Document, error) {
	o := options{frames: map[string]string{}}
	for _, opt := range opts {
		opt(&o)
	}
	return parse(markup, o)
}

// MustParse is Parse for fixtures.
func MustParse(markup string, opts ...Option) *Document {
	d, err := Parse(markup, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func parse(markup string, o options) (*Document, error) {
	n, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	d := &Document{
		id:       "doc-" + uuid.NewString(),
		node:     n,
		opts:     o,
		elements: make(map[*html.Node]*Element),
		shadows:  make(map[*html.Node]*ShadowRoot),
		frames:   make(map[*html.Node]*Document),
		globals:  make(map[string]any),
	}
	d.attachShadows(n)
	return d, nil
}

// attachShadows lifts declarative shadow templates out of the light tree.
func (d *Document) attachShadows(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.DataAtom == atom.Template {
			if mode, ok := attr(c, "shadowrootmode"); ok && n.Type == html.ElementNode {
				if _, taken := d.shadows[n]; !taken {
					n.RemoveChild(c)
					frag := &html.Node{Type: html.DocumentNode}
					for gc := c.FirstChild; gc != nil; {
						gnext := gc.NextSibling
						c.RemoveChild(gc)
						frag.AppendChild(gc)
						gc = gnext
					}
					d.shadows[n] = &ShadowRoot{
						id:     "shadow-" + uuid.NewString(),
						node:   frag,
						host:   n,
						doc:    d,
						closed: strings.EqualFold(mode, "closed"),
					}
					d.attachShadows(frag)
					c = next
					continue
				}
			}
		}
		d.attachShadows(c)
		c = next
	}
}

func (d *Document) Kind() dom.RootKind    { return dom.RootDocument }
func (d *Document) ID() string            { return d.id }
func (d *Document) Document() dom.Document { return d }
func (d *Document) Host() dom.Element     { return nil }

func (d *Document) QuerySelector(selector string) (dom.Element, error) {
	el, err := d.queryFirst(d.node, selector, d)
	if el == nil || err != nil {
		return nil, err
	}
	return el, nil
}

func (d *Document) QuerySelectorAll(selector string) ([]dom.Element, error) {
	return d.queryAll(d.node, selector, d)
}

// Query is a typed QuerySelector for fixture setup. It returns nil when
// nothing matches or the selector is invalid.
func (d *Document) Query(selector string) *Element {
	el, _ := d.queryFirst(d.node, selector, d)
	return el
}

func (d *Document) ActiveElement() (dom.Element, error) {
	if d.active != nil {
		return d.wrap(d.active, d.rootOf(d.active)), nil
	}
	body := d.Query("body")
	if body == nil {
		return nil, fmt.Errorf("document has no body")
	}
	return body, nil
}

// SetGlobal defines a window property. Dotted names are looked up verbatim.
func (d *Document) SetGlobal(name string, value any) {
	d.globals[name] = value
}

func (d *Document) HasGlobal(name string) bool {
	_, ok := d.globals[name]
	return ok
}

// Events returns a copy of every event dispatched in this document.
func (d *Document) Events() []Record {
	out := make([]Record, len(d.events))
	copy(out, d.events)
	return out
}

// HTML renders the document with shadow roots written back as declarative
// templates, so the output parses into the same tree.
func (d *Document) HTML() string {
	restore := d.inlineShadows()
	defer restore()

	var sb strings.Builder
	_ = html.Render(&sb, d.node)
	return sb.String()
}

// inlineShadows moves every shadow fragment back under its host for rendering.
func (d *Document) inlineShadows() func() {
	var undo []func()
	for host, s := range d.shadows {
		mode := "open"
		if s.closed {
			mode = "closed"
		}
		tpl := &html.Node{
			Type:     html.ElementNode,
			Data:     "template",
			DataAtom: atom.Template,
			Attr:     []html.Attribute{{Key: "shadowrootmode", Val: mode}},
		}
		var kids []*html.Node
		for c := s.node.FirstChild; c != nil; c = c.NextSibling {
			kids = append(kids, c)
		}
		for _, c := range kids {
			s.node.RemoveChild(c)
			tpl.AppendChild(c)
		}
		host.InsertBefore(tpl, host.FirstChild)

		undo = append(undo, func() {
			host.RemoveChild(tpl)
			for _, c := range kids {
				tpl.RemoveChild(c)
				s.node.AppendChild(c)
			}
		})
	}
	return func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}
}

// Shadow returns the shadow root hosted by el, open or closed.
func (d *Document) Shadow(el *Element) *ShadowRoot {
	if el == nil {
		return nil
	}
	return d.shadows[el.node]
}

func (d *Document) queryFirst(n *html.Node, selector string, root dom.Root) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	found := cascadia.Query(n, sel)
	if found == nil {
		return nil, nil
	}
	return d.wrap(found, root), nil
}

func (d *Document) queryAll(n *html.Node, selector string, root dom.Root) ([]dom.Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := cascadia.QueryAll(n, sel)
	out := make([]dom.Element, 0, len(nodes))
	for _, found := range nodes {
		out = append(out, d.wrap(found, root))
	}
	return out, nil
}

// wrap returns the cached handle for n so listeners and properties persist.
func (d *Document) wrap(n *html.Node, root dom.Root) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{
		node:    n,
		doc:     d,
		root:    root,
		props:   make(map[string]any),
		methods: make(map[string]Method),
		on:      make(map[string][]Listener),
	}
	d.elements[n] = el
	return el
}

// rootOf climbs to the fragment or document that owns n.
func (d *Document) rootOf(n *html.Node) dom.Root {
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	if top == d.node {
		return d
	}
	for _, s := range d.shadows {
		if s.node == top {
			return s
		}
	}
	return d
}

func (d *Document) record(target *Element, ev dom.Event) {
	d.events = append(d.events, Record{Target: target, Event: ev})
}

// frame resolves the content document of an iframe node.
func (d *Document) frame(n *html.Node) (*Document, error) {
	if fd, ok := d.frames[n]; ok {
		return fd, nil
	}
	var markup string
	if srcdoc, ok := attr(n, "srcdoc"); ok {
		markup = srcdoc
	} else {
		src, _ := attr(n, "src")
		if src == "" || src == "about:blank" {
			return nil, fmt.Errorf("frame not loaded")
		}
		if !d.sameOrigin(src) {
			return nil, fmt.Errorf("%w: %s", ErrCrossOrigin, src)
		}
		m, ok := d.opts.frames[src]
		if !ok {
			return nil, fmt.Errorf("frame not loaded: %s", src)
		}
		markup = m
	}
	fd, err := parse(markup, options{origin: d.opts.origin, frames: d.opts.frames})
	if err != nil {
		return nil, err
	}
	d.frames[n] = fd
	return fd, nil
}

func (d *Document) sameOrigin(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	if !u.IsAbs() {
		return true
	}
	return d.opts.origin != "" && strings.EqualFold(u.Scheme+"://"+u.Host, d.opts.origin)
}

// ShadowRoot is the RootShadow variant.
type ShadowRoot struct {
	id     string
	node   *html.Node
	host   *html.Node
	doc    *Document
	closed bool
}

func (s *ShadowRoot) Kind() dom.RootKind     { return dom.RootShadow }
func (s *ShadowRoot) ID() string             { return s.id }
func (s *ShadowRoot) Document() dom.Document { return s.doc }

func (s *ShadowRoot) Host() dom.Element {
	return s.doc.wrap(s.host, s.doc.rootOf(s.host))
}

func (s *ShadowRoot) QuerySelector(selector string) (dom.Element, error) {
	el, err := s.doc.queryFirst(s.node, selector, s)
	if el == nil || err != nil {
		return nil, err
	}
	return el, nil
}

func (s *ShadowRoot) QuerySelectorAll(selector string) ([]dom.Element, error) {
	return s.doc.queryAll(s.node, selector, s)
}

// Query is the typed fixture helper, see Document.Query.
func (s *ShadowRoot) Query(selector string) *Element {
	el, _ := s.doc.queryFirst(s.node, selector, s)
	return el
}

var (
	selMu    sync.Mutex
	selCache = map[string]cascadia.SelectorGroup{}
)

func compile(selector string) (cascadia.SelectorGroup, error) {
	selMu.Lock()
	defer selMu.Unlock()
	if sel, ok := selCache[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	selCache[selector] = sel
	return sel, nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}
