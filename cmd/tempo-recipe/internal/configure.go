package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/internal/emit"
)

func newConfigureCmd(a *app) *cobra.Command {
	var f configureFlags
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Derive the build configuration and write the toolchain file",
		Long: `Configure runs a full derivation pass for the selected revision and writes
tempo_toolchain.cmake and configuration.json into --output-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.configure(cmd.Context(), &f)
			if err != nil {
				return err
			}
			paths, err := emit.WriteAll(a.cfg.OutputDir, cfg)
			if err != nil {
				return err
			}
			a.log.Info("configuration written", "revision", cfg.Revision, "variables", cfg.Toolchain.Len())
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
