package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/app/encode"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

var (
	forkResources []string
	forkIcon      string
	forkWebloc    string
)

var resourceForkCmd = &cobra.Command{
	Use:   "resourcefork",
	Short: "Encode a resource fork",
	Long: `Encode a classic resource fork, the value of com.apple.ResourceFork.

Resources are given as TYPE:ID[:NAME]=DATA, where DATA is literal text or
@path to read a file. Types keep the order in which they first appear.

Examples:
  # Custom icon resource from an .icns file
  appledouble resourcefork --icon @folder.icns --out rsrc.bin

  # The resource fork of a .webloc file
  appledouble resourcefork --webloc https://example.com

  # Arbitrary resources
  appledouble resourcefork --resource 'STR :128:greeting=hello' --resource icns:-16455=@a.icns`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResourceFork(cmd)
	},
}

func init() {
	rootCmd.AddCommand(resourceForkCmd)

	resourceForkCmd.Flags().StringArrayVarP(&forkResources, "resource", "r", nil, "resource as TYPE:ID[:NAME]=DATA (repeatable)")
	resourceForkCmd.Flags().StringVar(&forkIcon, "icon", "", "custom icon .icns data (@path)")
	resourceForkCmd.Flags().StringVar(&forkWebloc, "webloc", "", "URL stored as the webloc 'url ' resource")
	addRawFlags(resourceForkCmd)
}

func runResourceFork(cmd *cobra.Command) error {
	ctx := newAppContext(cmd)

	request := &encode.ResourceForkRequest{
		Resources: forkResources,
		Icon:      app.Payload(forkIcon),
		WeblocURL: forkWebloc,
	}

	response, err := encode.HandleResourceFork(ctx, services.DefaultServiceFactory, request, encodeOptions())
	if err != nil {
		return err
	}
	return emit(ctx, response)
}
