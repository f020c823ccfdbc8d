package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/picatz/xai/internal/manifest"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	// Load environment variables from .env, if present.
	if err := manifest.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, styleWarning.Render("warning")+": "+err.Error())
	}

	rootCmd := newRootCommand(defaultApp())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version), fang.WithNotifySignal(os.Interrupt)); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exOK)
}
