package service

import (
	"strings"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
)

// SearchableRoots enumerates every root a widget could render in: the owning
// document of scope, every open shadow root at any depth and every same-origin
// iframe document, recursively. The main document comes first, the rest in
// discovery order. Inaccessible roots are skipped; it never fails.
func SearchableRoots(scope dom.Root) []dom.Root {
	if scope == nil {
		return nil
	}
	doc := scope.Document()
	if doc == nil {
		return nil
	}
	s := &rootScan{seen: make(map[string]bool)}
	s.walk(doc)
	return s.roots
}

// ScopeOf is the root an element lives in, for callers holding an element.
func ScopeOf(el dom.Element) dom.Root {
	if el == nil {
		return nil
	}
	return el.Root()
}

type rootScan struct {
	seen  map[string]bool
	roots []dom.Root
}

func (s *rootScan) walk(r dom.Root) {
	if r == nil {
		return
	}
	id, ok := safeID(r)
	if !ok || s.seen[id] {
		return
	}
	s.seen[id] = true
	s.roots = append(s.roots, r)

	for _, el := range candidates(r) {
		s.visit(el)
	}
}

func (s *rootScan) visit(el dom.Element) {
	defer func() { _ = recover() }()

	if sr := el.ShadowRoot(); sr != nil {
		s.walk(sr)
	}
	if strings.EqualFold(el.TagName(), "iframe") {
		fd, err := el.ContentDocument()
		if err == nil && fd != nil {
			s.walk(fd)
		}
	}
}

func candidates(r dom.Root) (els []dom.Element) {
	defer func() {
		if recover() != nil {
			els = nil
		}
	}()
	if hl, ok := r.(dom.HostLister); ok {
		if hosts, err := hl.Hosts(); err == nil {
			return hosts
		}
	}
	all, err := r.QuerySelectorAll("*")
	if err != nil {
		return nil
	}
	return all
}

func safeID(r dom.Root) (id string, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return r.ID(), true
}
