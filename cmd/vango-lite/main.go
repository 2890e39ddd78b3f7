package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-lite/internal/config"
	vlerrors "github.com/vango-dev/vango-lite/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	// configDir is the directory searched for vango-lite.json.
	configDir = "."

	noColor bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		vlerrors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vango-lite",
		Short: "A minimal declarative UI engine",
		Long: `vango-lite renders virtual node trees against a host document.

It mounts trees, diffs them into minimal host edits, and re-renders
stateful components when the reactive state they read changes.

  • render   print the HTML of a JSON tree file
  • diff     list the host edits that turn one tree into another
  • serve    run a live counter demo over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			vlerrors.SetColor(!noColor && os.Getenv("NO_COLOR") == "")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", ".", "Directory containing "+config.ConfigFileName)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		renderCmd(),
		diffCmd(),
		serveCmd(),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the optional config file and validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOptional(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
