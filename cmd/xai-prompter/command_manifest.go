package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/picatz/xai/internal/manifest"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Manage the module manifest",
	}

	var (
		dir   string
		force bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default module manifest",
		Long: `Write the default module manifest, declaring the api-key, endpoint,
model, max-tokens, and history variables and the environment variables that
set them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = filepath.Join(manifest.HomeDir(), ".asimov", "modules")
			}

			m := manifest.Default()

			path := filepath.Join(dir, m.Name+".yaml")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("manifest %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check manifest %s: %w", path, err)
			}

			path, err := m.Write(dir)
			if err != nil {
				return err
			}

			log.Debug().Str("path", path).Msg("wrote manifest")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to write the manifest to (default $HOME/.asimov/modules)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing manifest")

	cmd.AddCommand(initCmd)

	return cmd
}
