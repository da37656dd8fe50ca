package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/config"
	"github.com/hmans/tasks/internal/ui"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage the tasks configuration",
	Annotations: map[string]string{noStoreAnnotation: "true"},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default " + config.ConfigFile,
	Long:        `Writes the default configuration to ` + config.ConfigFile + ` (or --config) so it can be edited.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ConfigFile
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.Default().Save(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Success.Render("Wrote"), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
