package encode

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/app/output"
)

// FormatOutput writes resp to w in format (table, json or yaml).
func FormatOutput(w io.Writer, resp *Response, format string) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.Print(w, format, resp, nil)
	case output.FormatTable, "":
		return formatTable(w, resp)
	default:
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

// formatTable prints a summary, the layout, and the hex dump when requested.
func formatTable(w io.Writer, resp *Response) error {
	if err := output.SimpleTable(w, [][2]string{
		{"Kind", resp.Kind},
		{"Length", strconv.Itoa(resp.Length)},
		{"Digest", resp.Digest},
	}); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if err := output.PrintTable(w, regionTable(resp.Regions)); err != nil {
		return err
	}

	if resp.Hex != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, hex.Dump(resp.Data))
	}
	return nil
}

func regionTable(regions []RegionResult) *output.TableData {
	table := output.NewTableData("Region", "Offset", "Length")
	for _, r := range regions {
		table.AddRow(r.Name, fmt.Sprintf("0x%08x", r.Offset), strconv.FormatUint(r.Length, 10))
	}
	return table
}

// WriteRaw writes the encoded bytes to path, or to w when path is "-".
func WriteRaw(w io.Writer, path string, data []byte) error {
	if path == "-" {
		if _, err := w.Write(data); err != nil {
			return app.NewError(app.ErrCodeOutputFailed, "cannot write to stdout", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return app.NewError(app.ErrCodeOutputFailed, fmt.Sprintf("cannot write %s", path), err)
	}
	return nil
}

// FormatSummary provides a one-line summary for verbose output
func FormatSummary(resp *Response) string {
	return fmt.Sprintf("%s: %d bytes in %d regions, %s", resp.Kind, resp.Length, len(resp.Regions), resp.Digest)
}
