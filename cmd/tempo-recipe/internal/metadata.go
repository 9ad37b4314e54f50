package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/recipe"
)

func newMetadataCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Derive and print the package metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := a.revision()
			if err != nil {
				return err
			}
			meta, err := a.metadataLoader(rev)()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name: %s\n", meta.Name)
			for _, key := range []string{recipe.MetaVersion, recipe.MetaLicense, recipe.MetaURL, recipe.MetaDescription} {
				fmt.Fprintf(out, "%s: %s\n", key, meta.Field(key))
			}
			return nil
		},
	}
}
