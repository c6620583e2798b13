// Package browsertest provides in-memory fakes for the browser capability
// interfaces, so authentication and reconcile logic can be tested without a
// running browser.
package browsertest

import (
	"regexp"

	"github.com/stimulo/canvasctl/pkg/browser"
)

// FakePage is a scriptable browser.Page. Behavior is configured through the
// exported fields; every operation is appended to Calls in invocation order.
type FakePage struct {
	// CurrentURL is the URL the page is on. Navigate and click routing
	// update it.
	CurrentURL string

	// Routes maps a navigation target to the URL the browser lands on.
	// Unrouted targets land on themselves.
	Routes map[string]string

	// ClickRoutes maps a call key (see key construction below) to the URL
	// the page lands on after that click.
	ClickRoutes map[string]string

	// VisibleText lists texts visible on the current page.
	VisibleText map[string]bool

	// Errors injects a failure for the operation with the matching call key.
	Errors map[string]error

	// Headers holds the headers from the last SetExtraHTTPHeaders call.
	Headers map[string]string

	// GetStatus, GetBody and GetErr script the response of Get.
	GetStatus int
	GetBody   []byte
	GetErr    error

	// Fills records filled values keyed by selector or label pattern.
	Fills map[string]string

	// Files records attached file paths keyed by label pattern.
	Files map[string]string

	// Calls is the ordered log of call keys, e.g. "click-button:(?i)Save theme".
	Calls []string
}

// call logs the operation and returns any injected error. Call keys are
// "op:arg", with regexp arguments stringified via String().
func (p *FakePage) call(op, arg string) error {
	key := op + ":" + arg
	p.Calls = append(p.Calls, key)
	if err, ok := p.Errors[key]; ok {
		return err
	}
	return nil
}

func (p *FakePage) route(key, fallback string) {
	if url, ok := p.ClickRoutes[key]; ok {
		p.CurrentURL = url
	} else if fallback != "" {
		p.CurrentURL = fallback
	}
}

func (p *FakePage) Navigate(url string) error {
	if err := p.call("navigate", url); err != nil {
		return err
	}
	if target, ok := p.Routes[url]; ok {
		p.CurrentURL = target
	} else {
		p.CurrentURL = url
	}
	return nil
}

func (p *FakePage) URL() string {
	return p.CurrentURL
}

func (p *FakePage) Fill(selector, value string) error {
	if err := p.call("fill", selector); err != nil {
		return err
	}
	if p.Fills == nil {
		p.Fills = make(map[string]string)
	}
	p.Fills[selector] = value
	return nil
}

func (p *FakePage) Click(selector string) error {
	if err := p.call("click", selector); err != nil {
		return err
	}
	p.route("click:"+selector, "")
	return nil
}

func (p *FakePage) ClickButton(name *regexp.Regexp) error {
	if err := p.call("click-button", name.String()); err != nil {
		return err
	}
	p.route("click-button:"+name.String(), "")
	return nil
}

func (p *FakePage) ClickLink(name string) error {
	if err := p.call("click-link", name); err != nil {
		return err
	}
	p.route("click-link:"+name, "")
	return nil
}

func (p *FakePage) FillLabel(label *regexp.Regexp, value string) error {
	if err := p.call("fill-label", label.String()); err != nil {
		return err
	}
	if p.Fills == nil {
		p.Fills = make(map[string]string)
	}
	p.Fills[label.String()] = value
	return nil
}

func (p *FakePage) SetInputFiles(label *regexp.Regexp, path string) error {
	if err := p.call("set-files", label.String()); err != nil {
		return err
	}
	if p.Files == nil {
		p.Files = make(map[string]string)
	}
	p.Files[label.String()] = path
	return nil
}

func (p *FakePage) HasVisibleText(text string) (bool, error) {
	if err := p.call("has-text", text); err != nil {
		return false, err
	}
	return p.VisibleText[text], nil
}

func (p *FakePage) SetExtraHTTPHeaders(headers map[string]string) error {
	if err := p.call("set-headers", ""); err != nil {
		return err
	}
	p.Headers = headers
	return nil
}

func (p *FakePage) Get(url string, headers map[string]string) (int, []byte, error) {
	if err := p.call("get", url); err != nil {
		return 0, nil, err
	}
	if p.GetErr != nil {
		return 0, nil, p.GetErr
	}
	return p.GetStatus, p.GetBody, nil
}

// FakeJar is an in-memory browser.CookieJar.
type FakeJar struct {
	Store      []browser.Cookie
	CookiesErr error
	AddErr     error
}

func (j *FakeJar) Cookies() ([]browser.Cookie, error) {
	if j.CookiesErr != nil {
		return nil, j.CookiesErr
	}
	return j.Store, nil
}

func (j *FakeJar) AddCookies(cookies []browser.Cookie) error {
	if j.AddErr != nil {
		return j.AddErr
	}
	j.Store = append(j.Store, cookies...)
	return nil
}
