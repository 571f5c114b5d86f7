// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/scriptlink/pkg/apiscript"
	"github.com/invowk/scriptlink/pkg/types"
)

func newReadCommand(app *App) *cobra.Command {
	var outDir, separator string

	readCmd := &cobra.Command{
		Use:   "read",
		Short: "Print the text of every aggregated script, in manifest order",
		Long: `Print the text of every aggregated script, in manifest order.

Prints nothing and succeeds when --out-dir holds no manifest.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := app.buildContext(app.stderr)
			if err != nil {
				return err
			}

			scripts, found, err := apiscript.ReadAll(bc, types.FilesystemPath(outDir))
			if err != nil {
				return protocolError(err, "read global API scripts", outDir)
			}
			if !found {
				app.logger.Debug("no manifest, nothing to read", "dir", outDir)
				return nil
			}

			fmt.Fprint(app.stdout, strings.Join(scripts, separator))
			return nil
		},
	}

	readCmd.Flags().StringVar(&outDir, "out-dir", "", "unit output directory holding the manifest (required)")
	readCmd.Flags().StringVar(&separator, "separator", "\n", "text printed between scripts")
	_ = readCmd.MarkFlagRequired("out-dir")

	return readCmd
}

func newListCommand(app *App) *cobra.Command {
	var outDir string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the manifest entries, one per line",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := app.buildContext(app.stderr)
			if err != nil {
				return err
			}

			m, found, err := apiscript.LoadManifest(bc, types.FilesystemPath(outDir))
			if err != nil {
				return protocolError(err, "list global API scripts", outDir)
			}
			if !found {
				app.logger.Debug("no manifest", "dir", outDir)
				return nil
			}

			for _, entry := range m {
				fmt.Fprintln(app.stdout, entry)
			}
			return nil
		},
	}

	listCmd.Flags().StringVar(&outDir, "out-dir", "", "unit output directory holding the manifest (required)")
	_ = listCmd.MarkFlagRequired("out-dir")

	return listCmd
}
