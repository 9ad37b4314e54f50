package internal

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/recipe"
)

func newValidateCmd(a *app) *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check options and the C++ standard without resolving tools, then print the resolved options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := a.revision()
			if err != nil {
				return err
			}
			p, err := a.profile(&f)
			if err != nil {
				return err
			}
			settings, err := p.RecipeSettings()
			if err != nil {
				return err
			}
			opts, err := rev.Schema.Resolve(p.Options)
			if err != nil {
				return err
			}
			std := recipe.EffectiveCppStd(settings, opts)
			if err := recipe.CheckMinCppStd(std, rev.MinCppStd); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "revision %s: ok (cppstd %s)\n", rev.ID, std)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for name, v := range opts.All() {
				fmt.Fprintf(w, "  %s\t%s\n", name, v)
			}
			return w.Flush()
		},
	}
	f.register(cmd)
	return cmd
}
