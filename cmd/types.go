package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"auto-reference/core/format"

	"github.com/spf13/cobra"
)

var typesJSON bool

// typesCmd prints the sync metadata of every registered component type.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show annotated fields and diagnostics of component types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		summaries := rt.service.Types()
		if typesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summaries)
		}
		fmt.Println(format.New(rt.cfg.Sync.FormatMessages).Types(summaries))
		return nil
	},
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "print the summaries as JSON")
	RootCmd.AddCommand(typesCmd)
}
