package internal

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/recipe"
	"github.com/msfrank/tempo-recipe/tempo"
)

func newRevisionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revisions",
		Short: "List the recipe revisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REVISION\tMETADATA\tOPTIONS")
			latest := tempo.Latest()
			for _, rev := range tempo.All() {
				id := rev.ID
				if rev == latest {
					id += "*"
				}
				var names []string
				for _, opt := range rev.Schema.Options() {
					names = append(names, opt.Name)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, metadataSource(rev.Metadata), strings.Join(names, ","))
			}
			return w.Flush()
		},
	}
}

func metadataSource(src recipe.MetadataSource) string {
	switch m := src.(type) {
	case recipe.InlineMetadata:
		return "inline " + m.Version
	case recipe.FileMetadata:
		return "file " + m.Dir + "/"
	}
	return fmt.Sprintf("%T", src)
}
