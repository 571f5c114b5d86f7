// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/invowk/scriptlink/internal/issue"
)

// newIssuesCommand creates `scriptlink issues`, which lists the
// troubleshooting guides printed below errors or renders one of them.
func newIssuesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "issues [id]",
		Short: "List the troubleshooting guides, or show one",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		// Guides must stay readable when the config file is broken.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, i := range issue.Values() {
					fmt.Fprintf(app.stdout, "%2d  %s\n", i.Id(), i.Title())
				}
				return nil
			}

			n, err := strconv.Atoi(args[0])
			if err != nil {
				return usageError(fmt.Errorf("issue id must be a number, got %q", args[0]))
			}
			guide := issue.Get(issue.Id(n))
			if guide == nil {
				return usageError(fmt.Errorf("unknown issue %d; run 'scriptlink issues' for the list", n))
			}
			rendered, err := guide.Render("auto")
			if err != nil {
				return fmt.Errorf("failed to render issue %d: %w", n, err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}
