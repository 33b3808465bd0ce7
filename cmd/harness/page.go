package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/di"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/dom/htmldom"
)

// pageSource says where a command gets its DOM from. HTML files are parsed in
// memory and never touch a browser.
type pageSource struct {
	html string
	url  string
}

func (p pageSource) needsBrowser() bool {
	return p.html == ""
}

// load returns the page to scan. fallbackURL is used when neither a file nor
// a URL was given.
func (p pageSource) load(ctx context.Context, c *di.Container, fallbackURL string) (dom.Document, error) {
	if p.html != "" {
		data, err := os.ReadFile(p.html)
		if err != nil {
			return nil, fmt.Errorf("read html: %w", err)
		}
		doc, err := htmldom.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.html, err)
		}
		return doc, nil
	}

	if c.Browser == nil {
		return nil, errors.New("no browser available")
	}
	target := p.url
	if target == "" {
		target = fallbackURL
	}
	if target == "" {
		return nil, errors.New("nothing to load: pass --html or --url")
	}
	c.Logger.Info("Navigating", "url", target)
	if err := c.Browser.Navigate(ctx, target); err != nil {
		return nil, err
	}
	return c.Browser.Document(ctx)
}
