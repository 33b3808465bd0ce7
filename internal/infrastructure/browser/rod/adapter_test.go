package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.Equal(t, time.Duration(defaultSlowMotion), cfg.SlowMotion)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.False(t, cfg.NoSandbox, "Should be secure by default")
	assert.False(t, cfg.DevTools)
	assert.False(t, cfg.DisableSecurityFeatures, "Should be secure by default")
	assert.False(t, cfg.Stealth)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://localhost:8080/pickers", false},
		{"https", "https://example.com", false},
		{"file", "file:///tmp/fixture.html", false},
		{"about blank", "about:blank", false},
		{"Empty URL", "", true},
		{"Invalid scheme", "ftp://example.com", true},
		{"JavaScript URL", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// newTestAdapter starts a headless browser. Live tests are skipped with -short.
func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping live browser test in short mode")
	}
	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.NoSandbox = true

	adapter, err := NewBrowserAdapter(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(adapter.Close)
	return adapter
}

func serve(t *testing.T, markup string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, markup)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestNewBrowserAdapter_WithZeroTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live browser test in short mode")
	}
	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.NoSandbox = true
	cfg.Timeout = 0

	adapter, err := NewBrowserAdapter(nil, cfg)
	require.NoError(t, err)
	defer adapter.Close()

	assert.Equal(t, defaultTimeout, adapter.GetTimeout())
	assert.True(t, adapter.IsReady())
}

func TestBrowserAdapter_Navigate(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	url := serve(t, BasicHTML)

	require.NoError(t, adapter.Navigate(ctx, url))
	assert.Equal(t, url+"/", adapter.CurrentURL())

	err := adapter.Navigate(ctx, "javascript:alert(1)")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestBrowserAdapter_SetTimeout(t *testing.T) {
	adapter := newTestAdapter(t)

	adapter.SetTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, adapter.GetTimeout())

	adapter.SetTimeout(0)
	adapter.SetTimeout(-time.Second)
	assert.Equal(t, 5*time.Second, adapter.GetTimeout())
}

func TestBrowserAdapter_ClosedState(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.Close()
	assert.False(t, adapter.IsReady())
	assert.NotPanics(t, adapter.Close)

	assert.ErrorIs(t, adapter.Navigate(ctx, "http://example.com"), ErrBrowserNotConnected)
	assert.ErrorIs(t, adapter.LoadHTML(ctx, BasicHTML), ErrBrowserNotConnected)
	_, err := adapter.Document(ctx)
	assert.ErrorIs(t, err, ErrBrowserNotConnected)
	_, err = adapter.Screenshot(ctx)
	assert.ErrorIs(t, err, ErrBrowserNotConnected)
	_, err = adapter.HTML(ctx)
	assert.ErrorIs(t, err, ErrBrowserNotConnected)
	assert.Empty(t, adapter.CurrentURL())
}

func TestBrowserAdapter_Screenshot_Resize(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.LoadHTML(ctx, `<body style="width:2000px;height:1200px">wide</body>`))

	shot, err := adapter.Screenshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", shot.Format)
	assert.LessOrEqual(t, shot.Width, maxScreenshotW)

	img, _, err := image.Decode(bytes.NewReader(shot.Data))
	require.NoError(t, err)
	assert.Equal(t, shot.Width, img.Bounds().Dx())
}

func TestBrowserAdapter_HTML_SerializesOpenShadowRoots(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.LoadHTML(ctx, ShadowHTML))

	markup, err := adapter.HTML(ctx)
	require.NoError(t, err)

	assert.Contains(t, markup, `shadowrootmode="open"`)
	assert.Contains(t, markup, "flatpickr-input")
	assert.NotContains(t, markup, `class="secret"`)
}

func TestNewBrowserAdapter_Stealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live browser test in short mode")
	}
	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.NoSandbox = true
	cfg.Stealth = true

	adapter, err := NewBrowserAdapter(context.Background(), cfg)
	require.NoError(t, err)
	defer adapter.Close()

	page, cancel, err := adapter.pageFor(context.Background())
	require.NoError(t, err)
	defer cancel()
	res, err := page.Eval(`() => navigator.webdriver === true`)
	require.NoError(t, err)
	assert.False(t, res.Value.Bool())
}
