package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/blagoySimandov/cvtex/internal/yaml"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newDumpCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump <input>",
		Short: "Print the decoded curriculum",
		Long: `Dump decodes and validates the input and prints it back as normalized YAML,
JSON, or a Go value dump (spew) for debugging.`,
		Args: exactlyOneInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cv, err := a.load(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "yaml":
				out, err := yaml.Encode(cv)
				if err != nil {
					return err
				}
				_, err = a.out.Write(out)
				return err
			case "json":
				out, err := json.MarshalIndent(cv, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
				_, err = fmt.Fprintln(a.out, string(out))
				return err
			case "spew":
				dumpConfig.Fdump(a.out, cv)
				return nil
			}
			return withCode(ExitUsageError, fmt.Errorf("unknown format %q: expected yaml, json or spew", format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, json or spew")
	return cmd
}
