package auth

import (
	"fmt"
	"os"
	"strings"
)

// CredentialKind discriminates the two credential variants.
type CredentialKind string

const (
	// CredentialToken is an opaque API bearer token.
	CredentialToken CredentialKind = "token"

	// CredentialLogin is an email/password pair for the login form.
	CredentialLogin CredentialKind = "login"
)

// Credential is a tagged union: exactly one variant is populated.
type Credential struct {
	Kind     CredentialKind
	Token    string
	Email    string
	Password string
}

// TokenCredential builds a token credential.
func TokenCredential(token string) Credential {
	return Credential{Kind: CredentialToken, Token: token}
}

// LoginCredential builds a form-login credential.
func LoginCredential(email, password string) Credential {
	return Credential{Kind: CredentialLogin, Email: email, Password: password}
}

// Validate checks that exactly one variant is populated.
func (c Credential) Validate() error {
	switch c.Kind {
	case CredentialToken:
		if c.Token == "" {
			return fmt.Errorf("token credential has empty token")
		}
		if c.Email != "" || c.Password != "" {
			return fmt.Errorf("token credential must not carry login fields")
		}
	case CredentialLogin:
		if c.Email == "" || c.Password == "" {
			return fmt.Errorf("login credential requires email and password")
		}
		if c.Token != "" {
			return fmt.Errorf("login credential must not carry a token")
		}
	default:
		return fmt.Errorf("unknown credential kind %q", c.Kind)
	}
	return nil
}

// ReadTokenFile reads an API token from a plaintext file. The file holds a
// single line; surrounding whitespace is trimmed.
func ReadTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read API token from %s (generate one with scripts/generate_api_token.rb on the Canvas host): %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}
