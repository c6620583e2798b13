package auth

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stimulo/canvasctl/pkg/browser"
)

// LoginPath is the login surface path. A post-submit URL that still contains
// this path means the form was re-shown, i.e. the credentials were rejected.
const LoginPath = "/login"

// Canvas login form selectors.
const (
	uniqueIDSelector = `input[name="pseudonym_session[unique_id]"]`
	passwordSelector = `input[name="pseudonym_session[password]"]`
	submitSelector   = `button[type="submit"]`
)

// selfPath is the self-identity endpoint used to verify bearer tokens.
const selfPath = "/api/v1/users/self"

// Identity describes the authenticated Canvas user.
type Identity struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LoginID string `json:"login_id"`
	Email   string `json:"primary_email,omitempty"`
}

// VerifiedSession is an authenticated handle bound to one identity. It is
// valid for the lifetime of the browser session that produced it and must
// not be shared across unrelated page objects.
type VerifiedSession struct {
	Identity Identity

	// AuthHeader is the bearer header value; set for token sessions only.
	AuthHeader string

	// Cookies is the cookie state at verification time; set for form-login
	// sessions only.
	Cookies []browser.Cookie
}

// AuthError reports a failed authentication attempt: invalid credentials,
// an unreachable verification endpoint, or a non-2xx verification response.
type AuthError struct {
	Strategy CredentialKind

	// Status is the HTTP status of a failed token verification, 0 otherwise.
	Status int

	Err error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s authentication failed (status %d): %v", e.Strategy, e.Status, e.Err)
	}
	return fmt.Sprintf("%s authentication failed: %v", e.Strategy, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Authenticator produces a verified session against a Canvas base URL.
type Authenticator interface {
	Authenticate(page browser.Page, baseURL string) (*VerifiedSession, error)
}

// NewAuthenticator selects the strategy matching the credential variant.
func NewAuthenticator(c Credential) (Authenticator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Kind {
	case CredentialToken:
		return NewTokenAuth(c.Token), nil
	default:
		return NewFormLoginAuth(c.Email, c.Password), nil
	}
}

// TokenAuth authenticates with an API bearer token.
type TokenAuth struct {
	Token string
}

// NewTokenAuth creates a token authentication strategy.
func NewTokenAuth(token string) *TokenAuth {
	return &TokenAuth{Token: token}
}

// Authenticate attaches the bearer header to all future requests made
// through the page and verifies the token against the self-identity
// endpoint. A token that cannot be verified fails here, fast, rather than
// surfacing as a broken request later in the flow.
func (a *TokenAuth) Authenticate(page browser.Page, baseURL string) (*VerifiedSession, error) {
	header := "Bearer " + a.Token

	if err := page.SetExtraHTTPHeaders(map[string]string{"Authorization": header}); err != nil {
		return nil, &AuthError{Strategy: CredentialToken, Err: err}
	}

	status, body, err := page.Get(baseURL+selfPath, map[string]string{"Authorization": header})
	if err != nil {
		return nil, &AuthError{Strategy: CredentialToken, Err: fmt.Errorf("verification request failed: %w", err)}
	}
	if status < 200 || status >= 300 {
		return nil, &AuthError{
			Strategy: CredentialToken,
			Status:   status,
			Err:      fmt.Errorf("self-identity endpoint rejected token"),
		}
	}

	var identity Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, &AuthError{Strategy: CredentialToken, Err: fmt.Errorf("malformed identity response: %w", err)}
	}

	return &VerifiedSession{
		Identity:   identity,
		AuthHeader: header,
	}, nil
}

// FormLoginAuth authenticates by submitting the server-rendered login form.
// Required for UI-gated flows; a bearer token does not open the Theme Editor.
type FormLoginAuth struct {
	Email    string
	Password string

	// Jar, when set, is read after a successful login to capture the
	// session's cookie state.
	Jar browser.CookieJar
}

// NewFormLoginAuth creates a form-login strategy.
func NewFormLoginAuth(email, password string) *FormLoginAuth {
	return &FormLoginAuth{Email: email, Password: password}
}

// Authenticate fills and submits the login form, then inspects the resulting
// URL. Landing anywhere but the login surface means success.
func (a *FormLoginAuth) Authenticate(page browser.Page, baseURL string) (*VerifiedSession, error) {
	if err := page.Navigate(baseURL + LoginPath); err != nil {
		return nil, &AuthError{Strategy: CredentialLogin, Err: fmt.Errorf("login page unreachable: %w", err)}
	}

	if err := page.Fill(uniqueIDSelector, a.Email); err != nil {
		return nil, &AuthError{Strategy: CredentialLogin, Err: err}
	}
	if err := page.Fill(passwordSelector, a.Password); err != nil {
		return nil, &AuthError{Strategy: CredentialLogin, Err: err}
	}
	if err := page.Click(submitSelector); err != nil {
		return nil, &AuthError{Strategy: CredentialLogin, Err: err}
	}

	if strings.Contains(page.URL(), LoginPath) {
		return nil, &AuthError{Strategy: CredentialLogin, Err: fmt.Errorf("still on login page after submit")}
	}

	session := &VerifiedSession{
		Identity: Identity{LoginID: a.Email},
	}
	if a.Jar != nil {
		cookies, err := a.Jar.Cookies()
		if err != nil {
			return nil, &AuthError{Strategy: CredentialLogin, Err: fmt.Errorf("capture cookie state: %w", err)}
		}
		session.Cookies = cookies
	}
	return session, nil
}
