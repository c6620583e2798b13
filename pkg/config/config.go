// Package config builds the one explicit configuration struct the rest of
// canvasctl consumes. Environment variables are read here, at the boundary,
// and nowhere else; components receive values as parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Recognized environment variables.
const (
	EnvBaseURL       = "CANVAS_BASE_URL"
	EnvAccountID     = "CANVAS_ACCOUNT_ID"
	EnvThemeName     = "THEME_NAME"
	EnvAdminEmail    = "CANVAS_ADMIN_EMAIL"
	EnvAdminPassword = "CANVAS_ADMIN_PASSWORD"
	EnvTokenFile     = "CANVAS_TOKEN_FILE"
	EnvCookieFile    = "CANVAS_COOKIE_FILE"
)

// Defaults target a local Canvas development instance, matching the seeded
// admin account.
const (
	DefaultBaseURL       = "http://localhost:3000"
	DefaultAccountID     = "1"
	DefaultThemeName     = "Stimulo"
	DefaultAdminEmail    = "admin@localhost"
	DefaultAdminPassword = "AdminCanvas2025!"
	DefaultTokenFile     = ".canvas-token.local"
	DefaultCookieFile    = ".canvas-cookies.json"
	DefaultDistDir       = "theme/dist"
	DefaultTokensPath    = "theme/tokens/default.json"
)

// Config holds everything a run needs. Constructed once at startup and
// passed into the authentication and reconcile layers as parameters.
type Config struct {
	BaseURL       string `yaml:"base_url"`
	AccountID     string `yaml:"account_id"`
	ThemeName     string `yaml:"theme_name"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	TokenFile     string `yaml:"token_file"`
	CookieFile    string `yaml:"cookie_file"`
	DistDir       string `yaml:"dist_dir"`
	TokensPath    string `yaml:"tokens_path"`
	SourceDir     string `yaml:"source_dir"`
	Headless      bool   `yaml:"headless"`
}

// FromEnv builds a Config from the process environment, filling defaults for
// anything unset.
func FromEnv() *Config {
	return &Config{
		BaseURL:       envOr(EnvBaseURL, DefaultBaseURL),
		AccountID:     envOr(EnvAccountID, DefaultAccountID),
		ThemeName:     envOr(EnvThemeName, DefaultThemeName),
		AdminEmail:    envOr(EnvAdminEmail, DefaultAdminEmail),
		AdminPassword: envOr(EnvAdminPassword, DefaultAdminPassword),
		TokenFile:     envOr(EnvTokenFile, DefaultTokenFile),
		CookieFile:    envOr(EnvCookieFile, DefaultCookieFile),
		DistDir:       DefaultDistDir,
		TokensPath:    DefaultTokensPath,
		SourceDir:     ".",
		Headless:      true,
	}
}

// ApplyFile overlays settings from a YAML file. Only fields the file sets
// override the current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	merge(&c.BaseURL, overlay.BaseURL)
	merge(&c.AccountID, overlay.AccountID)
	merge(&c.ThemeName, overlay.ThemeName)
	merge(&c.AdminEmail, overlay.AdminEmail)
	merge(&c.AdminPassword, overlay.AdminPassword)
	merge(&c.TokenFile, overlay.TokenFile)
	merge(&c.CookieFile, overlay.CookieFile)
	merge(&c.DistDir, overlay.DistDir)
	merge(&c.TokensPath, overlay.TokensPath)
	merge(&c.SourceDir, overlay.SourceDir)
	return nil
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func merge(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
