package cmd

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/atikulmunna/logsift/internal/model"
	"github.com/atikulmunna/logsift/internal/output"
)

var formatInfo = []struct {
	format model.Format
	desc   string
	sample model.Record
}{
	{model.FormatLaravel, "Laravel application log (multi-line)", model.AppRecord{}},
	{model.FormatApache, "Apache 2.4 error log (multi-line)", model.ErrorRecord{}},
	{model.FormatAccess, "Common/combined access log", model.AccessRecord{}},
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported log formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("FLAG", "FORMAT", "ARTIFACT", "FIELDS")
			for _, fi := range formatInfo {
				t.Row("--"+string(fi.format), fi.desc,
					output.ArtifactName(fi.format, output.JSON),
					strings.Join(fieldNames(fi.sample), ", "))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}

// fieldNames returns the serialized field names of a record type.
func fieldNames(rec model.Record) []string {
	rt := reflect.TypeOf(rec)
	names := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}
