package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

func init() {
	RegisterCommand(&Command{
		Name:  "fields",
		Short: "List the configuration properties",
		Long: `List every configuration property the engine accepts, with its
type and its byte offset in the native parameter block.`,
		Usage: "nglrender fields",
		Run:   runFields,
	})
}

func runFields(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("fields takes no arguments")
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tOFFSET\tSIZE")
	for _, fd := range ngl.ConfigFields {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", fd.Name, fd.Tag, fd.Offset, fd.Tag.Width())
	}
	return tw.Flush()
}
