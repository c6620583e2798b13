package main

import (
	"errors"
	"fmt"

	"github.com/stimulo/canvasctl/pkg/auth"
	"github.com/stimulo/canvasctl/pkg/browser"
	"github.com/stimulo/canvasctl/pkg/config"
	"github.com/stimulo/canvasctl/pkg/logging"
	"github.com/stimulo/canvasctl/pkg/theme"
	"github.com/stimulo/canvasctl/pkg/theme/prepare"
)

// runPrepare builds the theme assets into the dist directory.
func runPrepare(cfg *config.Config) error {
	result, err := prepare.Build(prepare.Options{
		TokensPath: cfg.TokensPath,
		OutDir:     cfg.DistDir,
		ThemeName:  cfg.ThemeName,
		SourceDir:  cfg.SourceDir,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Built theme assets in %s\n", cfg.DistDir)
	if result.Logo == "" {
		fmt.Println("  (no logo staged)")
	}
	if result.Favicon == "" {
		fmt.Println("  (no favicon staged)")
	}
	return nil
}

// runLogin exercises one authentication strategy and prints the verified
// identity.
func runLogin(cfg *config.Config, method string) error {
	logger, _ := logging.NewLogger("cli")
	defer logger.Close()

	engine := browser.NewEngine()
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Shutdown()

	session, err := engine.NewSession(browser.SessionOptions{
		Headless: cfg.Headless,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	switch method {
	case "token":
		token, err := auth.ReadTokenFile(cfg.TokenFile)
		if err != nil {
			return err
		}
		authenticator, err := auth.NewAuthenticator(auth.TokenCredential(token))
		if err != nil {
			return err
		}
		verified, err := authenticator.Authenticate(session.Page(), cfg.BaseURL)
		if err != nil {
			return err
		}
		logger.Infof("token verified for user %d", verified.Identity.ID)
		fmt.Printf("Authenticated as: %s (%s)\n", verified.Identity.Name, verified.Identity.LoginID)

	case "form":
		verified, err := auth.EnsureFormSession(
			session.Page(), session.Cookies(),
			cfg.AdminEmail, cfg.AdminPassword, cfg.BaseURL, cfg.CookieFile,
		)
		if err != nil {
			return err
		}
		logger.Infof("form login verified for %s", verified.Identity.LoginID)
		fmt.Printf("Logged in as: %s (session-based)\n", verified.Identity.LoginID)

	default:
		return fmt.Errorf("unknown login method %q", method)
	}
	return nil
}

// runDeploy authenticates, then reconciles the theme against the dist
// directory's assets.
func runDeploy(cfg *config.Config, headed bool) error {
	logger, _ := logging.NewLogger("cli")
	defer logger.Close()

	assets, err := theme.DiscoverAssets(cfg.DistDir)
	if err != nil {
		return fmt.Errorf("no theme assets in %s (run canvasctl prepare first): %w", cfg.DistDir, err)
	}
	if _, ok := assets[theme.RoleStylesheet]; !ok {
		return fmt.Errorf("no stylesheet in %s (run canvasctl prepare first)", cfg.DistDir)
	}

	engine := browser.NewEngine()
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Shutdown()

	session, err := engine.NewSession(browser.SessionOptions{
		Headless: cfg.Headless && !headed,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	// The Theme Editor is UI-form-gated, so deploys always use a cookie
	// session regardless of any API token on hand.
	verified, err := auth.EnsureFormSession(
		session.Page(), session.Cookies(),
		cfg.AdminEmail, cfg.AdminPassword, cfg.BaseURL, cfg.CookieFile,
	)
	if err != nil {
		return err
	}
	logger.Infof("authenticated as %s", verified.Identity.LoginID)

	target := theme.Target{Name: cfg.ThemeName, Assets: assets}
	outcome, err := theme.NewReconciler(session.Page()).Reconcile(target, cfg.BaseURL, cfg.AccountID)
	if err != nil {
		var rerr *theme.ReconcileError
		if errors.As(err, &rerr) && rerr.Stage == theme.StageApply {
			// The save landed: the theme exists remotely in a
			// saved-but-inactive state. Report it, don't mask it.
			return fmt.Errorf("%w (theme %q is saved but not applied)", err, cfg.ThemeName)
		}
		return err
	}

	fmt.Printf("Applied theme %s (%s)\n", cfg.ThemeName, outcome)
	return nil
}
