package browser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// playwrightPage adapts a Playwright page to the Page interface.
type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Navigate(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Fill(selector, value string) error {
	if err := p.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) Click(selector string) error {
	if err := p.page.Click(selector); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return p.settle()
}

func (p *playwrightPage) ClickButton(name *regexp.Regexp) error {
	button := p.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: name,
	}).First()
	if err := button.Click(); err != nil {
		return fmt.Errorf("button %q click failed: %w", name, err)
	}
	return p.settle()
}

func (p *playwrightPage) ClickLink(name string) error {
	link := p.page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: name,
	}).First()
	if err := link.Click(); err != nil {
		return fmt.Errorf("link %q click failed: %w", name, err)
	}
	return p.settle()
}

func (p *playwrightPage) FillLabel(label *regexp.Regexp, value string) error {
	if err := p.page.GetByLabel(label).First().Fill(value); err != nil {
		return fmt.Errorf("fill %q failed: %w", label, err)
	}
	return nil
}

func (p *playwrightPage) SetInputFiles(label *regexp.Regexp, path string) error {
	if err := p.page.GetByLabel(label).First().SetInputFiles(path); err != nil {
		return fmt.Errorf("attach %q to %q failed: %w", path, label, err)
	}
	return nil
}

func (p *playwrightPage) HasVisibleText(text string) (bool, error) {
	visible, err := p.page.GetByText(text, playwright.PageGetByTextOptions{
		Exact: playwright.Bool(true),
	}).First().IsVisible()
	if err != nil {
		// A failed visibility probe means "not found", same as an empty
		// listing. Navigation errors are surfaced by Navigate, not here.
		return false, nil
	}
	return visible, nil
}

func (p *playwrightPage) SetExtraHTTPHeaders(headers map[string]string) error {
	if err := p.page.SetExtraHTTPHeaders(headers); err != nil {
		return fmt.Errorf("set headers failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) Get(url string, headers map[string]string) (int, []byte, error) {
	resp, err := p.page.Request().Get(url, playwright.APIRequestContextGetOptions{
		Headers: headers,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	body, err := resp.Body()
	if err != nil {
		return resp.Status(), nil, fmt.Errorf("read body failed: %w", err)
	}
	return resp.Status(), body, nil
}

// settle waits for in-flight navigation triggered by a click to finish, so
// the caller observes the post-action URL and DOM.
func (p *playwrightPage) settle() error {
	err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("wait for load failed: %w", err)
	}
	return nil
}

// playwrightJar adapts a browser context's cookie state to CookieJar.
type playwrightJar struct {
	context playwright.BrowserContext
}

func (j *playwrightJar) Cookies() ([]Cookie, error) {
	raw, err := j.context.Cookies()
	if err != nil {
		return nil, fmt.Errorf("read cookies failed: %w", err)
	}

	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		cookie := Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.SameSite != nil {
			cookie.SameSite = string(*c.SameSite)
		}
		cookies = append(cookies, cookie)
	}
	return cookies, nil
}

func (j *playwrightJar) AddCookies(cookies []Cookie) error {
	optional := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		cookie := c
		optional = append(optional, playwright.OptionalCookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Domain:   &cookie.Domain,
			Path:     &cookie.Path,
			Expires:  &cookie.Expires,
			HttpOnly: &cookie.HTTPOnly,
			Secure:   &cookie.Secure,
			SameSite: sameSiteAttribute(cookie.SameSite),
		})
	}
	if err := j.context.AddCookies(optional); err != nil {
		return fmt.Errorf("add cookies failed: %w", err)
	}
	return nil
}

func sameSiteAttribute(value string) *playwright.SameSiteAttribute {
	switch strings.ToLower(value) {
	case "strict":
		return playwright.SameSiteAttributeStrict
	case "lax":
		return playwright.SameSiteAttributeLax
	case "none":
		return playwright.SameSiteAttributeNone
	default:
		return nil
	}
}
