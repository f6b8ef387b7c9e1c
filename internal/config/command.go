package config

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachInitConfigCommand attaches an `init-config` subcommand to the
// provided root command. It writes the default settings to the given path so
// users have a file to edit.
func AttachInitConfigCommand(root *cobra.Command, configPath *string) {
	root.AddCommand(&cobra.Command{
		Use:   "init-config",
		Short: "Write the default settings file.",
		Long:  "Write a settings file populated with the defaults of the reference hardware build, ready for editing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := *configPath
			if path == "" {
				path = DefaultConfigFilename
			}

			if err := Save(path, Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote default settings to %s\n", path)

			return nil
		},
	})
}
