package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/app/encode"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

var (
	sidecarType          string
	sidecarCreator       string
	sidecarFlags         string
	sidecarExtendedFlags string
	sidecarIcon          string
	sidecarWebloc        string
)

var sidecarCmd = &cobra.Command{
	Use:   "sidecar [file]",
	Short: "Derive the ._ file for a file's Finder metadata",
	Long: `Build the AppleDouble sidecar a user space file system serves for a file:
a FinderInfo entry, always present, followed by a resource fork entry when
the file has a custom icon or a webloc URL. A custom icon sets kHasCustomIcon.

When a file name is given the sidecar name is derived from it and used as the
default --out path.

Examples:
  appledouble sidecar report.txt --type TEXT --creator ttxt
  appledouble sidecar --icon @folder.icns --out '._Icon'$'\r'
  appledouble sidecar link.webloc --webloc https://example.com`,

	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSidecar(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(sidecarCmd)

	sidecarCmd.Flags().StringVar(&sidecarType, "type", "", "file type code")
	sidecarCmd.Flags().StringVar(&sidecarCreator, "creator", "", "creator code")
	sidecarCmd.Flags().StringVar(&sidecarFlags, "flags", "", "Finder flags")
	sidecarCmd.Flags().StringVar(&sidecarExtendedFlags, "ext-flags", "", "extended Finder flags")
	sidecarCmd.Flags().StringVar(&sidecarIcon, "icon", "", "custom icon .icns data (@path)")
	sidecarCmd.Flags().StringVar(&sidecarWebloc, "webloc", "", "webloc URL")
	addRawFlags(sidecarCmd)
}

func runSidecar(cmd *cobra.Command, args []string) error {
	ctx := newAppContext(cmd)

	if len(args) == 1 {
		name := args[0]
		if services.IsSidecarName(name) {
			return app.NewError(app.ErrCodeInvalidInput, name+" is already a ._ sidecar", nil)
		}
		if outPath == "" {
			outPath = services.SidecarName(name)
		}
	}

	request := &encode.SidecarRequest{
		FinderInfoRequest: encode.FinderInfoRequest{
			TypeCode:      sidecarType,
			CreatorCode:   sidecarCreator,
			Flags:         sidecarFlags,
			ExtendedFlags: sidecarExtendedFlags,
		},
		Icon:      app.Payload(sidecarIcon),
		WeblocURL: sidecarWebloc,
	}

	response, err := encode.HandleSidecar(ctx, services.DefaultServiceFactory, request, encodeOptions())
	if err != nil {
		return err
	}
	return emit(ctx, response)
}
