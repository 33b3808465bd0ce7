package output

import (
	"context"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

// BrowserPort hosts the page under test and exposes it as a dom.Document.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	// LoadHTML replaces the current page with markup.
	LoadHTML(ctx context.Context, markup string) error
	Document(ctx context.Context) (dom.Document, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	// HTML serializes the current page, open shadow roots included as
	// declarative templates.
	HTML(ctx context.Context) (string, error)

	CurrentURL() string
	Close()
}
