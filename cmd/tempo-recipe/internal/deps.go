package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/recipe"
	"github.com/msfrank/tempo-recipe/tempo"
)

func newDepsCmd(a *app) *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the requires of a revision, or what changed since another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := a.revision()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if against == "" {
				for _, dep := range rev.Requires() {
					fmt.Fprintln(out, dep)
				}
				return nil
			}

			base, err := tempo.Lookup(against)
			if err != nil {
				return err
			}
			changes := recipe.DiffRequires(base.Requires(), rev.Requires())
			if len(changes) == 0 {
				fmt.Fprintf(out, "no changes between revisions %s and %s\n", base.ID, rev.ID)
				return nil
			}
			for _, c := range changes {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "diff", "", "show changes from this revision")
	return cmd
}
