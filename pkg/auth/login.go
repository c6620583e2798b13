package auth

import (
	"fmt"
	"strings"

	"github.com/stimulo/canvasctl/pkg/browser"
)

// EnsureFormSession returns a verified form-login session, reusing persisted
// cookie state when it still works.
//
// When cookiePath names an existing state file, the jar is seeded from it and
// the dashboard is probed; landing back on the login surface means the
// server-side session expired, in which case a fresh form login runs and the
// state file is rewritten. A missing or corrupt state file also falls through
// to a fresh login rather than failing the run.
func EnsureFormSession(page browser.Page, jar browser.CookieJar, email, password, baseURL, cookiePath string) (*VerifiedSession, error) {
	if cookiePath != "" {
		if session, ok := tryRestoredSession(page, jar, email, baseURL, cookiePath); ok {
			return session, nil
		}
	}

	form := &FormLoginAuth{Email: email, Password: password, Jar: jar}
	session, err := form.Authenticate(page, baseURL)
	if err != nil {
		return nil, err
	}

	if cookiePath != "" {
		if err := SaveCookies(jar, cookiePath); err != nil {
			return nil, fmt.Errorf("persist session state: %w", err)
		}
	}
	return session, nil
}

// tryRestoredSession seeds the jar from cookiePath and probes the dashboard.
func tryRestoredSession(page browser.Page, jar browser.CookieJar, email, baseURL, cookiePath string) (*VerifiedSession, bool) {
	if err := RestoreCookies(jar, cookiePath); err != nil {
		return nil, false
	}
	if err := page.Navigate(baseURL + "/"); err != nil {
		return nil, false
	}
	if strings.Contains(page.URL(), LoginPath) {
		// Stale cookies: the server bounced us to the login form.
		return nil, false
	}

	session := &VerifiedSession{Identity: Identity{LoginID: email}}
	if cookies, err := jar.Cookies(); err == nil {
		session.Cookies = cookies
	}
	return session, true
}
