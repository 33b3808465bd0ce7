package di

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/adapter/httpapi"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/input"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/service"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/browser/rod"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/logger"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/scenarios"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/screenshot"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/usecase/evaluator"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/usecase/executor"
)

type Container struct {
	Config      Config
	Catalog     *catalog.Catalog
	Registry    *service.CapabilityRegistry
	Scenarios   *scenarios.Source
	Runner      input.ScenarioRunner
	Browser     output.BrowserPort
	Screenshots *screenshot.Store
	Logger      output.LoggerPort
}

type Config struct {
	// BaseURL serves the picker test pages, one per scenario.
	BaseURL       string
	LaunchBrowser bool
	Browser       rod.BrowserConfig
	ScenariosFile string
	LogDir        string
	LogName       string
	Debug         bool
	HTTPAddr      string
	// CORSOrigins lists dashboard origins allowed to call the HTTP API.
	CORSOrigins   []string
	ScreenshotDir string
}

// ConfigFromEnv reads every setting the harness knows about. The browser is
// not launched unless the caller sets LaunchBrowser.
func ConfigFromEnv(env output.ConfigPort) Config {
	browser := rod.DefaultConfig()
	browser.Headless = env.GetBool("BROWSER_HEADLESS", true)
	browser.NoSandbox = env.GetBool("BROWSER_NO_SANDBOX", false)
	browser.Timeout = env.GetDuration("BROWSER_TIMEOUT", 10*time.Second)
	browser.Bin = env.Get("BROWSER_BIN")
	browser.Stealth = env.GetBool("BROWSER_STEALTH", false)

	return Config{
		BaseURL:       env.GetWithDefault("HARNESS_BASE_URL", "http://localhost:5173"),
		Browser:       browser,
		ScenariosFile: env.Get("SCENARIOS_FILE"),
		LogDir:        env.GetWithDefault("LOG_DIR", "log"),
		LogName:       "harness",
		Debug:         env.GetBool("LOG_DEBUG", false),
		HTTPAddr:      env.GetWithDefault("HTTP_ADDR", ":8080"),
		CORSOrigins:   splitList(env.Get("CORS_ORIGINS")),
		ScreenshotDir: env.Get("SCREENSHOT_DIR"),
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ScenarioURL is the harness page that hosts scenario id.
func (c Config) ScenarioURL(id string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/?scenario=" + url.QueryEscape(id)
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.LogName, logger.WithDir(cfg.LogDir), logger.WithDebug(cfg.Debug))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cat := catalog.Default()
	src, err := scenarios.Load(cat, cfg.ScenariosFile)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}

	registry := service.NewCapabilityRegistry(cat)
	runner := executor.New(registry, src, evaluator.New(log), log)

	c := &Container{
		Config:      cfg,
		Catalog:     cat,
		Registry:    registry,
		Scenarios:   src,
		Runner:      runner,
		Screenshots: screenshot.NewStore(cfg.ScreenshotDir),
		Logger:      log,
	}

	if cfg.LaunchBrowser {
		browser, err := rod.NewBrowserAdapter(ctx, cfg.Browser)
		if err != nil {
			log.Close()
			return nil, fmt.Errorf("failed to create browser: %w", err)
		}
		c.Browser = browser
	}

	log.Info("Container ready",
		"pickers", cat.Len(),
		"scenarios", len(src.List()),
		"browser", cfg.LaunchBrowser,
		"screenshots", c.Screenshots.Dir(),
	)
	return c, nil
}

func (c *Container) HTTPServer() *httpapi.Server {
	return httpapi.New(httpapi.Deps{
		Catalog:     c.Catalog,
		Scenarios:   c.Scenarios,
		Registry:    c.Registry,
		Runner:      c.Runner,
		Browser:     c.Browser,
		Screenshots: c.Screenshots,
		Logger:      c.Logger,
		CORSOrigins: c.Config.CORSOrigins,
	})
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
