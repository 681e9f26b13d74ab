package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/internal/carousel"
	"showcase/internal/page"
	"showcase/internal/render"
	"showcase/internal/resolver"
)

// bakeCmd injects resolved carousels into the site's project pages.
func bakeCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "bake [page.html...]",
		Short: "Bake carousel markup into project pages",
		Long: `Resolves the playlist of every project page and writes the carousel
markup into it. Without arguments every page under the site root that
carries the project image is baked in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := pagePaths(args)
			if err != nil {
				return err
			}
			res, _, err := newResolver(cfg, logger)
			if err != nil {
				return err
			}

			bar := newProgressBar(len(pages), "Baking")
			var failed int
			for _, path := range pages {
				dst := path
				if outDir != "" {
					rel, err := filepath.Rel(cfg.Site.Root, path)
					if err != nil || strings.HasPrefix(rel, "..") {
						rel = filepath.Base(path)
					}
					dst = filepath.Join(outDir, rel)
				}
				n, err := bakePage(cmd.Context(), res, path, dst)
				step(bar)
				if err != nil {
					failed++
					logger.Error("bake failed", zap.String("page", path), zap.Error(err))
					continue
				}
				logger.Info("baked", zap.String("page", path), zap.String("out", dst), zap.Int("items", n))
			}
			finish(bar)

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d page(s)", okColor.Sprint("baked"), len(pages)-failed)
			if failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %s", errColor.Sprintf("%d failed", failed))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if failed > 0 {
				return fmt.Errorf("%d page(s) failed to bake", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write baked pages below this directory instead of in place")
	return cmd
}

// pagePaths returns the explicit pages or every project page of the site.
func pagePaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	rel, err := page.Scan(cfg.Site.Root)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(rel))
	for i, r := range rel {
		paths[i] = filepath.Join(cfg.Site.Root, r)
	}
	return paths, nil
}

// bakePage resolves and injects the carousel for one page and writes the
// result to dst. It returns the playlist length.
func bakePage(ctx context.Context, res *resolver.Resolver, src, dst string) (int, error) {
	p, err := page.Load(src)
	if err != nil {
		return 0, err
	}
	pl, err := res.Resolve(ctx, p.Request())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", src, err)
	}
	ctl := carousel.New(pl, controllerOptions(cfg, logger)...)
	if err := render.Inject(p, ctl.View(), render.Options{Hero: cfg.Carousel.Hero}); err != nil {
		return 0, fmt.Errorf("%s: %w", src, err)
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return 0, fmt.Errorf("render %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", dst, err)
	}
	return pl.Len(), nil
}
