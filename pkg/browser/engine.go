package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Engine owns the Playwright runtime and launches browser sessions.
type Engine struct {
	mu          sync.Mutex
	playwright  *playwright.Playwright
	initialized bool
}

// NewEngine creates a new, unstarted engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Start installs (if needed) and starts the Playwright driver.
// This must be called before creating any sessions.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}

	// Discard driver output so it does not interleave with our own stderr
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	e.playwright = pw
	e.initialized = true
	return nil
}

// NewSession launches a browser and returns a session wrapping one context
// and one page.
func (e *Engine) NewSession(opts SessionOptions) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil, fmt.Errorf("engine not started")
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	b, err := e.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	if opts.BaseURL != "" {
		contextOpts.BaseURL = &opts.BaseURL
	}
	context, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	p, err := context.NewPage()
	if err != nil {
		context.Close()
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	p.SetDefaultTimeout(opts.Timeout)

	return &Session{
		browser: b,
		context: context,
		page:    &playwrightPage{page: p},
		jar:     &playwrightJar{context: context},
	}, nil
}

// Shutdown stops the Playwright driver. Sessions must be closed first.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized && e.playwright != nil {
		if err := e.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		e.initialized = false
	}
	return nil
}

// Session bundles a browser instance with its context and page.
type Session struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    *playwrightPage
	jar     *playwrightJar
}

// Page returns the session's page surface.
func (s *Session) Page() Page {
	return s.page
}

// Cookies returns the session's cookie jar.
func (s *Session) Cookies() CookieJar {
	return s.jar
}

// Close releases the page, context, and browser. Errors during cleanup are
// ignored so a partially closed session never blocks shutdown.
func (s *Session) Close() {
	_ = s.page.page.Close()
	_ = s.context.Close()
	_ = s.browser.Close()
}
