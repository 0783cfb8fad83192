package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/internal/config"
	"github.com/deploymenttheory/go-appledouble/internal/logger"
	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/app/encode"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string

	// Raw output of encode commands
	outPath string
	hexDump bool

	// Loaded in PersistentPreRunE
	cfg       *config.Config
	appLogger *slog.Logger
	closeLogs func() error
)

var rootCmd = &cobra.Command{
	Use:   "appledouble",
	Short: "Build AppleDouble files, resource forks and FinderInfo records",
	Long: `appledouble builds the binary Finder metadata Mac OS X keeps beside a file:
the 32-byte FinderInfo record, classic resource forks, and AppleDouble (._)
sidecar files that bundle them for file systems without native forks.

Commands:
  finderinfo    Encode a FinderInfo record
  resourcefork  Encode a resource fork
  appledouble   Encode an AppleDouble file from explicit entries
  sidecar       Derive the ._ file a user space file system would serve
  list          List entry kinds or Finder flags
  config        Show or initialize the configuration`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLogs != nil {
			return closeLogs()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml); defaults to output.format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./appledouble.yaml or $HOME/.appledouble/appledouble.yaml)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// addRawFlags registers the flags of commands that produce a blob.
func addRawFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outPath, "out", "", "write the encoded bytes to this file (- for stdout)")
	cmd.Flags().BoolVar(&hexDump, "hex", false, "include a hex dump in the output")
}

// setup loads the configuration, builds the logger and configures the
// default service factory.
func setup() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return app.NewError(app.ErrCodeConfig, "cannot load configuration", err)
	}
	cfg = loaded

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "DEBUG"
	} else if quiet {
		logCfg.Level = "ERROR"
	}
	log, closer, err := logger.New(logCfg)
	if err != nil {
		return app.NewError(app.ErrCodeConfig, "cannot open log output", err)
	}
	appLogger = log
	closeLogs = closer

	opts, err := services.OptionsFromConfig(cfg)
	if err != nil {
		return app.NewError(app.ErrCodeConfig, "invalid encoder settings", err)
	}
	services.DefaultServiceFactory.Configure(log, opts)
	return nil
}

// newAppContext creates the application context for cmd.
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	if c := cmd.Context(); c != nil {
		ctx.Context = c
	}
	ctx.OutputFormat = GetOutputFormat()
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Out = cmd.OutOrStdout()
	if appLogger != nil {
		ctx.Logger = appLogger
	}
	return ctx
}

// emit writes the raw blob when --out is given and prints the response
// unless the blob went to stdout or output is quiet.
func emit(ctx *app.Context, resp *encode.Response) error {
	if outPath != "" {
		if err := encode.WriteRaw(ctx.Out, outPath, resp.Data); err != nil {
			return err
		}
		ctx.Log("wrote encoded data", "path", outPath, "length", resp.Length)
		if outPath == "-" {
			return nil
		}
	}
	if quiet {
		return nil
	}
	ctx.Debug(encode.FormatSummary(resp))
	return encode.FormatOutput(ctx.Out, resp, ctx.OutputFormat)
}

// encodeOptions returns the options shared by the encode commands.
func encodeOptions() encode.Options {
	return encode.Options{Hex: hexDump}
}

// GetOutputFormat returns the output format, falling back to the configured one
func GetOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if cfg != nil {
		return string(cfg.Output.Format)
	}
	return "table"
}
