package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultSlowMotion = 0
	defaultTimeout    = 10 * time.Second
	maxScreenshotW    = 1024
)

var (
	ErrBrowserNotConnected = errors.New("browser not connected")
	ErrInvalidURL          = errors.New("invalid url")
)

type BrowserAdapter struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	closed   bool
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
	// DisableSecurityFeatures turns off same-origin checks so cross-origin
	// iframes become scannable. Only for local fixtures.
	DisableSecurityFeatures bool
	// Bin is an explicit browser binary. Empty lets the launcher find or
	// download one.
	Bin string
	// Stealth opens the page with evasions for sites that hide widgets from
	// automated browsers.
	Stealth bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:                false,
		SlowMotion:              defaultSlowMotion,
		Timeout:                 defaultTimeout,
		NoSandbox:               false,
		DevTools:                false,
		DisableSecurityFeatures: false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.DisableSecurityFeatures {
		l = l.Set("disable-web-security").
			Set("disable-site-isolation-trials").
			Set("allow-running-insecure-content")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := openPage(browser, cfg.Stealth)
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func openPage(browser *rod.Browser, withStealth bool) (*rod.Page, error) {
	if withStealth {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) GetTimeout() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timeout
}

// SetTimeout ignores non-positive values.
func (b *BrowserAdapter) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	b.mu.Lock()
	b.timeout = d
	b.mu.Unlock()
}

// pageFor binds the page to ctx and the adapter timeout.
func (b *BrowserAdapter) pageFor(ctx context.Context) (*rod.Page, context.CancelFunc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.page == nil {
		return nil, nil, ErrBrowserNotConnected
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	return b.page.Context(ctx), cancel, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	page, cancel, err := b.pageFor(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

// LoadHTML replaces the document of the current page.
func (b *BrowserAdapter) LoadHTML(ctx context.Context, markup string) error {
	page, cancel, err := b.pageFor(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := page.SetDocumentContent(markup); err != nil {
		return fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

// Document returns the live page as a dom.Document bound to ctx. Calls on it
// fail once ctx is done.
func (b *BrowserAdapter) Document(ctx context.Context) (dom.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.page == nil {
		return nil, ErrBrowserNotConnected
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return NewDocument(b.page.Context(ctx)), nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	page, cancel, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	imgBytes, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotW {
		img = imaging.Resize(img, maxScreenshotW, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// serializeJS prefers getHTML, which writes open shadow roots as
// <template shadowrootmode>. Older engines only get the light tree.
const serializeJS = `() => {
	const el = document.documentElement;
	if (typeof el.getHTML !== 'function') return '<!DOCTYPE html>' + el.outerHTML;
	const roots = [];
	const walk = (node) => node.querySelectorAll('*').forEach(e => {
		if (e.shadowRoot) { roots.push(e.shadowRoot); walk(e.shadowRoot); }
	});
	walk(document);
	return '<!DOCTYPE html><html>' + el.getHTML({ serializableShadowRoots: true, shadowRoots: roots }) + '</html>';
}`

func (b *BrowserAdapter) HTML(ctx context.Context) (string, error) {
	page, cancel, err := b.pageFor(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	res, err := page.Eval(serializeJS)
	if err != nil {
		return "", fmt.Errorf("serialize page: %w", err)
	}
	return res.Value.Str(), nil
}

func (b *BrowserAdapter) CurrentURL() string {
	page, cancel, err := b.pageFor(context.Background())
	if err != nil {
		return ""
	}
	defer cancel()

	info, err := page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close is idempotent.
func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if raw == "about:blank" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}
