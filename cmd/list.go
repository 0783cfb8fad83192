package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-appledouble/internal/types"
	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/app/output"
)

// kindInfo is one row of "list kinds".
type kindInfo struct {
	ID   uint32 `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// flagInfo is one row of "list flags".
type flagInfo struct {
	Set   string `json:"set" yaml:"set"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

var listCmd = &cobra.Command{
	Use:   "list {kinds|flags}",
	Short: "List entry kinds or Finder flags",
	Long: `List the names accepted by the encode commands.

Examples:
  # AppleDouble entry kinds for --entry
  appledouble list kinds

  # Finder and extended Finder flags for --flags and --ext-flags
  appledouble list flags -o json`,

	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"kinds", "flags"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, what string) error {
	ctx := newAppContext(cmd)

	switch what {
	case "kinds":
		kinds := make([]kindInfo, 0, len(types.EntryIDs()))
		table := output.NewTableData("ID", "Name")
		for _, id := range types.EntryIDs() {
			kinds = append(kinds, kindInfo{ID: uint32(id), Name: id.String()})
			table.AddRow(fmt.Sprintf("%d", uint32(id)), id.String())
		}
		return output.Print(ctx.Out, ctx.OutputFormat, kinds, table)

	case "flags":
		var flags []flagInfo
		table := output.NewTableData("Set", "Name", "Value")
		add := func(set string, names []types.FlagName) {
			for _, f := range names {
				value := fmt.Sprintf("0x%04x", f.Value)
				flags = append(flags, flagInfo{Set: set, Name: f.Name, Value: value})
				table.AddRow(set, f.Name, value)
			}
		}
		add("finder", types.FinderFlagNames)
		add("extended", types.ExtendedFlagNames)
		return output.Print(ctx.Out, ctx.OutputFormat, flags, table)

	default:
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unknown list %q, expected kinds or flags", what), nil)
	}
}
