// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/scriptlink/pkg/apiscript"
	"github.com/invowk/scriptlink/pkg/types"
)

func newAggregateCommand(app *App) *cobra.Command {
	var outDir, override string

	aggregateCmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Collect every visible provider's script into the manifest",
		Long: `Collect every visible provider's script into the manifest.

Every DEP_<LINKS>_GLOBAL_API_SCRIPT_PATH variable contributes one entry, in
variable-name order. The framework's own variable, or --override when the
framework variable is absent, is listed first. The manifest in --out-dir is
replaced atomically.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := app.buildContext(app.stdout)
			if err != nil {
				return err
			}

			dir := types.FilesystemPath(outDir)
			m, err := apiscript.Aggregate(bc, dir, types.FilesystemPath(override))
			if err != nil {
				return protocolError(err, "aggregate global API scripts", outDir)
			}

			fmt.Fprintf(app.stdout, "%s %d global API script(s) into %s\n",
				SuccessStyle.Render("Aggregated"), len(m), bc.Convention().ManifestPath(dir))
			return nil
		},
	}

	aggregateCmd.Flags().StringVar(&outDir, "out-dir", "", "unit output directory to write the manifest into (required)")
	aggregateCmd.Flags().StringVar(&override, "override", "", "script listed first unless the framework variable is set")
	_ = aggregateCmd.MarkFlagRequired("out-dir")

	return aggregateCmd
}
