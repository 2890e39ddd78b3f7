package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-lite/internal/config"
	"github.com/vango-dev/vango-lite/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ConfigFileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(configDir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runInit(dir string, force bool) error {
	path := filepath.Join(dir, config.ConfigFileName)
	if config.Exists(dir) && !force {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail(path + " already exists").
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := config.New().SaveTo(path); err != nil {
		return err
	}
	success("Wrote %s", path)
	return nil
}
