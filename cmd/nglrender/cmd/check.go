package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/nopeforge/nopegl-go/pkg/hostconfig"
	"github.com/nopeforge/nopegl-go/pkg/marshal"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Show how a configuration file is marshaled",
		Long: `Marshal a configuration file into the native parameter block and
print the resulting value of every property. Properties the file does not
supply, or supplies with an unusable type, are marked as defaults.

Flags:
  --config FILE      Configuration file (required)`,
		Usage: "nglrender check --config FILE",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	var path string
	for i := 0; i < len(args); i++ {
		v, skip, ok, err := flagValue(args, i, "--config")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown flag %q", args[i])
		}
		path = v
		i += skip
	}
	if path == "" {
		return fmt.Errorf("--config is required\n\nUsage: nglrender check --config FILE")
	}

	m, err := hostconfig.Load(path)
	if err != nil {
		return err
	}
	native := ngl.NewConfig()
	if err := marshal.Marshal(&native, ngl.ConfigFields, m); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	missing := marshal.Missing(ngl.ConfigFields, m)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, fd := range ngl.ConfigFields {
		v, err := marshal.Value(&native, fd)
		if err != nil {
			return err
		}
		note := ""
		if slices.Contains(missing, fd.Name) {
			note = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%v\t%s\n", fd.Name, v, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, k := range hostconfig.Unknown(m, ngl.ConfigFields) {
		fmt.Fprintf(stdout, "warning: unknown property %q ignored\n", k)
	}
	return nil
}
