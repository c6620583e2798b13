package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stimulo/canvasctl/pkg/browser"
)

// ErrNotFound is returned by LoadCookies when no session state file exists.
var ErrNotFound = errors.New("session state not found")

// CorruptError is returned when a session state file exists but does not
// hold a well-formed cookie collection.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("session state %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// SaveCookies serializes the jar's cookie state to path as a JSON array of
// cookie records.
func SaveCookies(jar browser.CookieJar, path string) error {
	cookies, err := jar.Cookies()
	if err != nil {
		return fmt.Errorf("read cookie state: %w", err)
	}

	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookie state: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create session state directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// LoadCookies reads persisted cookie state from path. The cookies are
// returned as-is: the store does not judge freshness. Server-side expiry is
// detected downstream, when an action lands back on the login surface.
func LoadCookies(path string) ([]browser.Cookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read session state: %w", err)
	}

	var cookies []browser.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	return cookies, nil
}

// RestoreCookies seeds the jar with persisted state. It only adds cookies to
// the automation engine's jar prior to first navigation; it never mutates a
// verified session that was already constructed.
func RestoreCookies(jar browser.CookieJar, path string) error {
	cookies, err := LoadCookies(path)
	if err != nil {
		return err
	}
	if err := jar.AddCookies(cookies); err != nil {
		return fmt.Errorf("seed cookie jar: %w", err)
	}
	return nil
}
