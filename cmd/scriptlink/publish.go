// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/scriptlink/pkg/apiscript"
	"github.com/invowk/scriptlink/pkg/types"
)

func newPublishCommand(app *App) *cobra.Command {
	var outputBase, sourceRoot string

	publishCmd := &cobra.Command{
		Use:   "publish <path>",
		Short: "Announce a provider's global API script to its dependents",
		Long: `Announce a provider's global API script to its dependents.

Writes one directive line to stdout for the orchestrator to forward. The path
may use $VAR references, which expand against the environment. Relative paths
are resolved against the source root. The script must exist and lie under the
output base; it is announced relative to that base.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []apiscript.Option
			if outputBase != "" {
				opts = append(opts, apiscript.WithOutputBase(types.FilesystemPath(outputBase)))
			}
			if sourceRoot != "" {
				opts = append(opts, apiscript.WithSourceRoot(types.FilesystemPath(sourceRoot)))
			}

			bc, err := app.buildContext(app.stdout, opts...)
			if err != nil {
				return err
			}

			path, err := bc.Env().Expand(args[0])
			if err != nil {
				return usageError(err)
			}

			d, err := apiscript.Publish(bc, types.FilesystemPath(path))
			if err != nil {
				return protocolError(err, "publish global API script", path)
			}
			app.logger.Debug("published", "value", d.Value)
			return nil
		},
	}

	publishCmd.Flags().StringVar(&outputBase, "output-base", "", "output base (default: value of the output base variable)")
	publishCmd.Flags().StringVar(&sourceRoot, "source-root", "", "source root for relative paths (default: value of the source root variable)")

	return publishCmd
}
