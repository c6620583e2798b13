package browser

import "regexp"

// Page is the automation surface the deploy flow drives. Implementations
// must block until the underlying operation has settled, so callers can rely
// on strict navigate -> fill -> click ordering without extra waits.
type Page interface {
	// Navigate loads the URL and waits for the page to settle.
	Navigate(url string) error

	// URL returns the current page URL, including any redirect target.
	URL() string

	// Fill sets the value of the input matching the CSS selector.
	Fill(selector, value string) error

	// Click clicks the element matching the CSS selector and waits for any
	// resulting navigation to settle.
	Click(selector string) error

	// ClickButton clicks the first button whose accessible name matches the
	// pattern.
	ClickButton(name *regexp.Regexp) error

	// ClickLink clicks the first link whose accessible name equals name.
	ClickLink(name string) error

	// FillLabel fills the first form control whose label matches the pattern.
	FillLabel(label *regexp.Regexp, value string) error

	// SetInputFiles attaches the file at path to the first file input whose
	// label matches the pattern.
	SetInputFiles(label *regexp.Regexp, path string) error

	// HasVisibleText reports whether the first element containing exactly
	// text is visible on the current page.
	HasVisibleText(text string) (bool, error)

	// SetExtraHTTPHeaders attaches headers to every subsequent request made
	// through this page, page loads included.
	SetExtraHTTPHeaders(headers map[string]string) error

	// Get issues an HTTP GET through the page's request context and returns
	// the status code and response body.
	Get(url string, headers map[string]string) (int, []byte, error)
}

// CookieJar exposes the cookie state of a browser context.
type CookieJar interface {
	// Cookies returns all cookies currently held by the context.
	Cookies() ([]Cookie, error)

	// AddCookies seeds the context with cookies before navigation.
	AddCookies(cookies []Cookie) error
}

// Cookie is one cookie record. The JSON shape matches Playwright's cookie
// serialization so state saved by other Playwright tooling stays readable.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// BaseURL is prepended to relative navigation targets
	BaseURL string

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for browser sessions
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)
