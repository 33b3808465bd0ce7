// Package dom describes the slice of a browser DOM the picker harness needs.
// Adapters implement it either over a live page or over parsed HTML.
package dom

// RootKind discriminates the two kinds of Root.
type RootKind int

const (
	RootDocument RootKind = iota
	RootShadow
)

func (k RootKind) String() string {
	switch k {
	case RootDocument:
		return "document"
	case RootShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// Root is a scope within which selector queries are valid: a document or a
// shadow root. Plain querySelectorAll never crosses from one root into another.
type Root interface {
	Kind() RootKind
	// ID is stable for the lifetime of the underlying node.
	ID() string
	// QuerySelector returns nil, nil when nothing matches.
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
	// Document is the document that owns this root. For a document it is itself.
	Document() Document
	// Host is the shadow host, nil for documents.
	Host() Element
}

// Document is the RootDocument variant.
type Document interface {
	Root
	// ActiveElement falls back to the body when nothing has focus.
	ActiveElement() (Element, error)
	// HasGlobal reports whether a (possibly dotted) window property is defined.
	HasGlobal(name string) bool
}

// Event is a synthetic DOM event.
type Event struct {
	Type string
	Key  string
}

// Element is a node handle scoped to the root it was found in.
type Element interface {
	TagName() string
	Attribute(name string) (string, bool)
	Text() (string, error)
	Value() (string, error)
	SetValue(value string) error
	Dispatch(ev Event) error
	Click() error
	Focus() error
	Blur() error
	// Call invokes a (possibly dotted) method path on the element.
	Call(method string, args ...any) (any, error)
	// Property reads a (possibly dotted) JS property path.
	Property(name string) (any, bool, error)
	// ShadowRoot returns nil when there is no open shadow root.
	ShadowRoot() Root
	// ContentDocument is only meaningful for iframes. It errors when the frame is
	// cross-origin or not loaded.
	ContentDocument() (Document, error)
	Root() Root
	// QuerySelector searches the element's descendants within the same root.
	QuerySelector(selector string) (Element, error)
}

// HostLister is an optional fast path for roots where per-element calls are
// expensive. Hosts returns, in document order, the elements of the root that
// carry an open shadow root or are iframes.
type HostLister interface {
	Hosts() ([]Element, error)
}

// AsDocument reports whether r is the document variant.
func AsDocument(r Root) (Document, bool) {
	if r == nil || r.Kind() != RootDocument {
		return nil, false
	}
	d, ok := r.(Document)
	return d, ok
}
