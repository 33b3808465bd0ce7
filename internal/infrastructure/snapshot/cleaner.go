// Package snapshot turns a serialized page into markup that replays offline.
// Scripts and handlers are stripped, while the attributes pickers are detected
// by and declarative shadow roots survive, so a failed run can be re-detected
// from the saved file with the in-memory DOM.
package snapshot

import (
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	// CustomAttrFilter drops an attribute when it returns true.
	CustomAttrFilter func(attr html.Attribute) bool
}

var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "link", "meta",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "nonce", "integrity",
	},
}

// Clean parses raw and renders it back without scripts, styles, comments and
// inline handlers. data-* and aria-* attributes, templates and iframes stay.
// Markup that cannot be parsed is returned unchanged.
func Clean(raw string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	cleanNode(doc, cfg)
	return render(doc)
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	switch n.Type {
	case html.CommentNode:
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	case html.ElementNode:
		if isOneOf(n.Data, cfg.TagsToRemove...) {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return
		}
		n.Attr = filterAttributes(n.Attr, cfg)
	case html.DocumentNode:
	default:
		return
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c, cfg)
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *CleanConfig) []html.Attribute {
	kept := attrs[:0]
	for _, attr := range attrs {
		if shouldRemoveAttr(attr, cfg) {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func shouldRemoveAttr(attr html.Attribute, cfg *CleanConfig) bool {
	key := strings.ToLower(attr.Key)
	if isOneOf(key, cfg.AttrsToRemove...) {
		return true
	}
	// inline handlers, onclick and friends
	if strings.HasPrefix(key, "on") {
		return true
	}
	if strings.HasPrefix(strings.TrimSpace(strings.ToLower(attr.Val)), "javascript:") {
		return true
	}
	if cfg.CustomAttrFilter != nil && cfg.CustomAttrFilter(attr) {
		return true
	}
	return false
}

func render(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
