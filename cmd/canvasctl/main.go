// Package main provides canvasctl, a deployment tool that builds Stimulo
// theme assets and pushes them into a Canvas LMS instance through the Theme
// Editor UI.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/stimulo/canvasctl/pkg/config"
)

const version = "0.1.0"

// CLI defines the command-line interface parsed by Kong.
type CLI struct {
	EnvFile string `name:"env-file" help:"Path to a .env file to load before reading the environment"`
	Config  string `short:"c" help:"Path to a YAML config overlay"`

	Prepare PrepareCmd `cmd:"" help:"Build theme assets from the design-token document"`
	Login   LoginCmd   `cmd:"" help:"Verify credentials against Canvas"`
	Deploy  DeployCmd  `cmd:"" help:"Create or update the theme in Canvas and apply it"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type PrepareCmd struct{}

type LoginCmd struct {
	Method string `default:"token" enum:"token,form" help:"Authentication method to exercise (token or form)"`
}

type DeployCmd struct {
	Headed bool `help:"Run the browser with a visible window"`
}

type VersionCmd struct{}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("canvasctl"),
		kong.Description("Deploy the Stimulo theme to a Canvas LMS instance."),
	)

	// An interrupted run stops at the next browser await point. Unsaved
	// Theme Editor state does not affect the applied theme, so no cleanup
	// beyond process exit is needed.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "canvasctl: interrupted")
		os.Exit(130)
	}()

	loadEnvFile(cli.EnvFile)

	cfg := config.FromEnv()
	if cli.Config != "" {
		if err := cfg.ApplyFile(cli.Config); err != nil {
			fail(err)
		}
	}

	var err error
	switch ctx.Command() {
	case "prepare":
		err = runPrepare(cfg)
	case "login":
		err = runLogin(cfg, cli.Login.Method)
	case "deploy":
		err = runDeploy(cfg, cli.Deploy.Headed)
	case "version":
		fmt.Printf("canvasctl v%s\n", version)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		fail(err)
	}
}

// loadEnvFile loads an explicit env file, or ./.env when one exists.
func loadEnvFile(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "canvasctl: warning: failed to load env file %s: %v\n", path, err)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "canvasctl: warning: failed to load .env: %v\n", err)
		}
	}
}

// fail prints a one-line diagnostic and terminates with non-zero status.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "canvasctl: %v\n", err)
	os.Exit(1)
}
