// Package browser provides web browser automation through Playwright.
//
// The package is built around three core concepts:
//
//  1. Engine: owns the Playwright runtime and launches browser sessions
//  2. Session: encapsulates a browser instance with its context and page
//  3. Page / CookieJar: capability interfaces exposing exactly the
//     primitives the deploy flow needs
//
// Everything above this package (authentication, cookie persistence, theme
// reconciliation) depends only on the Page and CookieJar interfaces, never on
// Playwright types directly. That keeps the core logic testable against an
// in-memory fake (see the browsertest subpackage) and pins down the contract
// with the automation engine to a small, reviewable surface.
//
// # Session Lifecycle
//
//	engine := browser.NewEngine()
//	if err := engine.Start(); err != nil { ... }
//	defer engine.Shutdown()
//
//	session, err := engine.NewSession(browser.SessionOptions{Headless: true})
//	if err != nil { ... }
//	defer session.Close()
//
//	page := session.Page()
//	err = page.Navigate("http://localhost:3000/login")
//
// Sessions are cheap but not free: each one launches a dedicated browser
// process. The deploy flow uses a single session per invocation.
package browser
