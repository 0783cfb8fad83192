package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/pkg/app/encode"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

var (
	finderType          string
	finderCreator       string
	finderFlags         string
	finderExtendedFlags string
)

var finderInfoCmd = &cobra.Command{
	Use:   "finderinfo",
	Short: "Encode a 32-byte FinderInfo record",
	Long: `Encode the value of the com.apple.FinderInfo extended attribute.

Flags take a number or a comma separated list of Finder.h names
(see "appledouble list flags").

Examples:
  # A TextEdit document
  appledouble finderinfo --type TEXT --creator ttxt

  # An invisible file with a custom icon, written to disk
  appledouble finderinfo --flags kIsInvisible,kHasCustomIcon --out finderinfo.bin`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFinderInfo(cmd)
	},
}

func init() {
	rootCmd.AddCommand(finderInfoCmd)

	finderInfoCmd.Flags().StringVar(&finderType, "type", "", "file type code, e.g. TEXT")
	finderInfoCmd.Flags().StringVar(&finderCreator, "creator", "", "creator code, e.g. ttxt")
	finderInfoCmd.Flags().StringVar(&finderFlags, "flags", "", "Finder flags")
	finderInfoCmd.Flags().StringVar(&finderExtendedFlags, "ext-flags", "", "extended Finder flags")
	addRawFlags(finderInfoCmd)
}

func runFinderInfo(cmd *cobra.Command) error {
	ctx := newAppContext(cmd)

	request := &encode.FinderInfoRequest{
		TypeCode:      finderType,
		CreatorCode:   finderCreator,
		Flags:         finderFlags,
		ExtendedFlags: finderExtendedFlags,
	}

	response, err := encode.HandleFinderInfo(ctx, services.DefaultServiceFactory, request, encodeOptions())
	if err != nil {
		return err
	}
	return emit(ctx, response)
}
