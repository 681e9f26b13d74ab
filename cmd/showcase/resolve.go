package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"showcase/internal/carousel"
	"showcase/internal/page"
	"showcase/internal/resolver"
)

// resolveCmd resolves one playlist, either from a project page or from
// explicit flags, and prints it.
func resolveCmd() *cobra.Command {
	var (
		req      resolver.Request
		asJSON   bool
		withView bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [page.html]",
		Short: "Resolve the media playlist for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p, err := page.Load(args[0])
				if err != nil {
					return err
				}
				req = p.Request()
			}

			res, _, err := newResolver(cfg, logger)
			if err != nil {
				return err
			}
			pl, err := res.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				var v any = pl.Snapshot()
				if withView {
					v = struct {
						carousel.Snapshot
						View carousel.View `json:"view"`
					}{pl.Snapshot(), carousel.New(pl, controllerOptions(cfg, logger)...).View()}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}
			printPlaylist(out, req, pl)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProjectID, "project", "", "Project identifier")
	cmd.Flags().IntVar(&req.MaxShots, "shots", 0, "Maximum number of screenshots to probe")
	cmd.Flags().StringVar(&req.VideoURL, "video", "", "Optional embeddable video URL")
	cmd.Flags().StringVar(&req.PreviewURL, "preview", "", "Preview image used when nothing else is found")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the playlist as JSON")
	cmd.Flags().BoolVar(&withView, "view", false, "Include the initial carousel view (with --json)")
	return cmd
}

func printPlaylist(w io.Writer, req resolver.Request, pl *carousel.Playlist) {
	fmt.Fprintf(w, "%s  %d item(s)\n", okColor.Sprint(req.ProjectID), pl.Len())
	for i, it := range pl.Items() {
		label := it.Type.String()
		if it.IsImage() && it.Shot == 0 {
			label = warnColor.Sprint("preview")
		}
		fmt.Fprintf(w, "  %2d  %-7s %s\n", i+1, label, it.URL)
	}
}
