// Package auth establishes verified sessions against a Canvas instance.
//
// Two strategies are provided. TokenAuth attaches an API token as a bearer
// header and actively verifies it against the self-identity endpoint before
// reporting success. FormLoginAuth drives the server-rendered login form and
// treats "the resulting URL still contains /login" as the sole failure
// signal, because Canvas re-renders the form without a structured error.
//
// A bearer token is enough for API calls, but UI-gated flows such as the
// Theme Editor require a cookie session, so deployments always go through
// FormLoginAuth. Cookie state can be persisted and restored across runs
// (SaveCookies/RestoreCookies); EnsureFormSession combines restore, a
// staleness probe, and fresh login into the flow most callers want.
//
// Neither strategy retries. Retry policy, if any, belongs to the caller.
package auth
