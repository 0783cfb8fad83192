package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/internal/config"
	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/app/output"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the configuration",
	Long: `Show the effective configuration or write a default config file.

Settings are read from appledouble.yaml in the current directory or
$HOME/.appledouble, and can be overridden with APPLEDOUBLE_* environment
variables, e.g. APPLEDOUBLE_APPLEDOUBLE_DUPLICATE_ENTRIES=replace.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newAppContext(cmd)

		format := ctx.OutputFormat
		if format == output.FormatTable {
			format = output.FormatYAML
		}
		return output.Print(ctx.Out, format, cfg, nil)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newAppContext(cmd)

		path := configInitPath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return app.NewError(app.ErrCodeConfig, "cannot locate home directory", err)
			}
			path = filepath.Join(home, ".appledouble", "appledouble.yaml")
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return app.NewError(app.ErrCodeConfig, path+" already exists, use --force to overwrite", nil)
		}
		if err := config.SaveConfig(config.GetDefaultConfig(), path); err != nil {
			return app.NewError(app.ErrCodeConfig, "cannot write configuration", err)
		}

		ctx.Log("configuration written", "path", path)
		if !quiet {
			cmd.Printf("Configuration written to %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write the file (default $HOME/.appledouble/appledouble.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}
