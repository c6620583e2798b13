package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stimulo/canvasctl/pkg/browser"
	"github.com/stimulo/canvasctl/pkg/browser/browsertest"
)

const baseURL = "http://localhost:3000"

func TestTokenAuthSuccess(t *testing.T) {
	page := &browsertest.FakePage{
		GetStatus: 200,
		GetBody:   []byte(`{"id": 1, "name": "Admin", "login_id": "admin@localhost"}`),
	}

	session, err := NewTokenAuth("abc123").Authenticate(page, baseURL)
	require.NoError(t, err)

	assert.Equal(t, int64(1), session.Identity.ID)
	assert.Equal(t, "Admin", session.Identity.Name)
	assert.Equal(t, "admin@localhost", session.Identity.LoginID)
	assert.Equal(t, "Bearer abc123", session.AuthHeader)

	// The bearer header must cover all future requests, not just the
	// verification call.
	assert.Equal(t, "Bearer abc123", page.Headers["Authorization"])
	assert.Equal(t, []string{"set-headers:", "get:" + baseURL + "/api/v1/users/self"}, page.Calls)
}

func TestTokenAuthRejectedToken(t *testing.T) {
	page := &browsertest.FakePage{
		GetStatus: 401,
		GetBody:   []byte(`{"errors":[{"message":"Invalid access token."}]}`),
	}

	session, err := NewTokenAuth("expired").Authenticate(page, baseURL)
	assert.Nil(t, session)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CredentialToken, authErr.Strategy)
	assert.Equal(t, 401, authErr.Status)

	// Verification failed, so nothing else may have been attempted.
	for _, call := range page.Calls {
		assert.NotContains(t, call, "navigate")
	}
}

func TestTokenAuthUnreachableEndpoint(t *testing.T) {
	page := &browsertest.FakePage{GetErr: errors.New("connection refused")}

	_, err := NewTokenAuth("abc123").Authenticate(page, baseURL)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CredentialToken, authErr.Strategy)
	assert.Zero(t, authErr.Status)
}

func TestTokenAuthMalformedIdentity(t *testing.T) {
	page := &browsertest.FakePage{
		GetStatus: 200,
		GetBody:   []byte(`<html>not json</html>`),
	}

	_, err := NewTokenAuth("abc123").Authenticate(page, baseURL)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestFormLoginSuccess(t *testing.T) {
	page := &browsertest.FakePage{
		ClickRoutes: map[string]string{
			`click:button[type="submit"]`: baseURL + "/?login_success=1",
		},
	}
	jar := &browsertest.FakeJar{
		Store: []browser.Cookie{{Name: "_normandy_session", Value: "s3cret", Domain: "localhost"}},
	}

	form := &FormLoginAuth{Email: "admin@localhost", Password: "AdminCanvas2025!", Jar: jar}
	session, err := form.Authenticate(page, baseURL)
	require.NoError(t, err)

	assert.Equal(t, "admin@localhost", session.Identity.LoginID)
	assert.Empty(t, session.AuthHeader)
	require.Len(t, session.Cookies, 1)
	assert.Equal(t, "_normandy_session", session.Cookies[0].Name)

	assert.Equal(t, []string{
		"navigate:" + baseURL + "/login",
		`fill:input[name="pseudonym_session[unique_id]"]`,
		`fill:input[name="pseudonym_session[password]"]`,
		`click:button[type="submit"]`,
	}, page.Calls)
	assert.Equal(t, "admin@localhost", page.Fills[`input[name="pseudonym_session[unique_id]"]`])
}

func TestFormLoginRejectedLandsBackOnLoginPage(t *testing.T) {
	// No click route: submitting leaves the page on /login, which is the
	// only rejection signal Canvas gives.
	page := &browsertest.FakePage{}

	form := NewFormLoginAuth("admin@localhost", "wrong")
	session, err := form.Authenticate(page, baseURL)
	assert.Nil(t, session)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CredentialLogin, authErr.Strategy)
}

func TestNewAuthenticatorSelectsStrategy(t *testing.T) {
	tokenAuth, err := NewAuthenticator(TokenCredential("abc123"))
	require.NoError(t, err)
	assert.IsType(t, &TokenAuth{}, tokenAuth)

	formAuth, err := NewAuthenticator(LoginCredential("admin@localhost", "pw"))
	require.NoError(t, err)
	assert.IsType(t, &FormLoginAuth{}, formAuth)

	_, err = NewAuthenticator(Credential{Kind: CredentialToken})
	assert.Error(t, err)
}

func TestFormLoginUnreachable(t *testing.T) {
	page := &browsertest.FakePage{
		Errors: map[string]error{
			"navigate:" + baseURL + "/login": errors.New("connection refused"),
		},
	}

	_, err := NewFormLoginAuth("admin@localhost", "pw").Authenticate(page, baseURL)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CredentialLogin, authErr.Strategy)
}
