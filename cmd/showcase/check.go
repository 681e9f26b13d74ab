package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/internal/page"
)

// checkCmd resolves every project page and reports which ones found no
// screenshots and fell back to their preview image.
func checkCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [page.html...]",
		Short: "Report screenshot coverage of the project pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := pagePaths(args)
			if err != nil {
				return err
			}
			res, cache, err := newResolver(cfg, logger)
			if err != nil {
				return err
			}

			type result struct {
				page     string
				items    int
				fallback bool
				err      error
			}
			results := make([]result, 0, len(pages))

			bar := newProgressBar(len(pages), "Checking")
			for _, path := range pages {
				r := result{page: path}
				p, err := page.Load(path)
				if err == nil {
					pl, rerr := res.Resolve(cmd.Context(), p.Request())
					if rerr == nil {
						r.items = pl.Len()
						r.fallback = !pl.HasVideo() && pl.At(0).Shot == 0
					}
					err = rerr
				}
				r.err = err
				results = append(results, r)
				step(bar)
			}
			finish(bar)

			out := cmd.OutOrStdout()
			var failed, fallbacks int
			for _, r := range results {
				name := r.page
				if rel, err := filepath.Rel(cfg.Site.Root, r.page); err == nil {
					name = rel
				}
				switch {
				case r.err != nil:
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", errColor.Sprint("FAIL"), name, r.err)
				case r.fallback:
					fallbacks++
					fmt.Fprintf(out, "%s %s: no screenshots, preview only\n", warnColor.Sprint("WARN"), name)
				default:
					fmt.Fprintf(out, "%s %s %s\n", okColor.Sprint(" OK "), name, dimColor.Sprintf("(%d items)", r.items))
				}
			}
			logger.Debug("check done", zap.Int("pages", len(results)), zap.Int("probes", cache.Probes()))

			fmt.Fprintf(out, "\n%d page(s), %d failed, %d preview-only, %d probe(s)\n",
				len(results), failed, fallbacks, cache.Probes())
			if failed > 0 || (strict && fallbacks > 0) {
				return fmt.Errorf("check failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat preview-only pages as failures")
	return cmd
}
