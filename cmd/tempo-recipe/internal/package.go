package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/internal/env"
	"github.com/msfrank/tempo-recipe/internal/pack"
	"github.com/msfrank/tempo-recipe/internal/publish"
	"github.com/msfrank/tempo-recipe/recipe"
)

func newPackageCmd(a *app) *cobra.Command {
	var (
		output string
		upload bool
	)
	cmd := &cobra.Command{
		Use:   "package BUILD_DIR",
		Short: "Collect headers and libraries from a build tree",
		Long: `Package copies headers and libraries out of BUILD_DIR, writes
package_info.json and delivers the result to --output, which can be a
directory or a .zip file. With --publish the .zip is then uploaded to the
configured object store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := a.revision()
			if err != nil {
				return err
			}
			if upload && !strings.HasSuffix(output, ".zip") {
				return fmt.Errorf("--publish needs a .zip --output")
			}
			dest := output
			if dest == "" {
				dest = filepath.Join(a.cfg.OutputDir, "package")
			}
			// Resolve before staging so relative paths stay relative to the caller.
			if dest, err = filepath.Abs(dest); err != nil {
				return fmt.Errorf("failed to resolve output path: %w", err)
			}

			workDir, err := env.WorkDir()
			if err != nil {
				return err
			}
			stage, err := os.MkdirTemp(workDir, "package-")
			if err != nil {
				return fmt.Errorf("failed to create staging dir: %w", err)
			}
			defer os.RemoveAll(stage)

			copied, err := pack.Package(args[0], stage)
			if err != nil {
				return err
			}
			for _, c := range copied {
				a.log.Debug("packaged", "kind", c.Kind, "from", c.From, "to", c.To)
			}
			if err := pack.Finalize(stage, rev.PackageInfo); err != nil {
				return err
			}
			if err := pack.Output(stage, dest); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			a.log.Info("package written", "files", len(copied), "output", dest)
			fmt.Fprintln(cmd.OutOrStdout(), dest)

			if !upload {
				return nil
			}
			meta, err := a.metadataLoader(rev)()
			if err != nil {
				return err
			}
			loc, err := a.publish(cmd.Context(), rev, meta, dest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output path (directory or .zip file, default: <output-dir>/package)")
	cmd.Flags().BoolVar(&upload, "publish", false, "upload the .zip to the object store named by the publish.* config")
	return cmd
}

func (a *app) publish(ctx context.Context, rev *recipe.Revision, meta recipe.PackageMetadata, archive string) (string, error) {
	p, err := publish.New(a.cfg.Publish)
	if err != nil {
		return "", err
	}
	key := a.cfg.Publish.ObjectKey(meta.Name, meta.Version, rev.ID, archive)
	loc, err := p.Upload(ctx, archive, key)
	if err != nil {
		return "", err
	}
	a.log.Info("package published", "location", loc)
	return loc, nil
}
