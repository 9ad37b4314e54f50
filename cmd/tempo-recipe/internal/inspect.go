package internal

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the option schema, settings, requires and tools of a revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := a.revision()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "revision:   %s\n", rev.ID)
			fmt.Fprintf(out, "package:    %s\n", rev.Name)
			fmt.Fprintf(out, "metadata:   %s\n", metadataSource(rev.Metadata))
			fmt.Fprintf(out, "min cppstd: %s\n", rev.MinCppStd)
			fmt.Fprintf(out, "settings:   %s\n", strings.Join(rev.Settings, ", "))
			fmt.Fprintf(out, "sources:    %s\n", strings.Join(rev.Sources, ", "))

			fmt.Fprintln(out, "\noptions:")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, opt := range rev.Schema.Options() {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", opt.Name, opt.Domain, opt.Default)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nrequires:")
			for _, dep := range rev.Requires() {
				fmt.Fprintf(out, "  %s\n", dep)
			}

			fmt.Fprintln(out, "\ntools:")
			for _, t := range rev.Tools {
				fmt.Fprintf(out, "  %s: %s -> %s\n", t.Package, t.EnvVar, t.Variable)
			}
			return nil
		},
	}
}
