package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/pkg/app/encode"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

var appleDoubleEntries []string

var appleDoubleCmd = &cobra.Command{
	Use:   "appledouble",
	Short: "Encode an AppleDouble file from explicit entries",
	Long: `Encode an AppleDouble header file. Entries are given as KIND=DATA,
where KIND is an entry name (see "appledouble list kinds") or number and
DATA is literal text or @path. Entries are written in the order given.

Examples:
  # FinderInfo and resource fork produced by the other commands
  appledouble appledouble --entry FinderInfo=@finderinfo.bin --entry ResourceFork=@rsrc.bin --out ._file

  # A comment entry
  appledouble appledouble --entry Comment='quarterly numbers' --hex`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAppleDouble(cmd)
	},
}

func init() {
	rootCmd.AddCommand(appleDoubleCmd)

	appleDoubleCmd.Flags().StringArrayVarP(&appleDoubleEntries, "entry", "e", nil, "entry as KIND=DATA (repeatable)")
	addRawFlags(appleDoubleCmd)
}

func runAppleDouble(cmd *cobra.Command) error {
	ctx := newAppContext(cmd)

	request := &encode.AppleDoubleRequest{Entries: appleDoubleEntries}

	response, err := encode.HandleAppleDouble(ctx, services.DefaultServiceFactory, request, encodeOptions())
	if err != nil {
		return err
	}
	return emit(ctx, response)
}
