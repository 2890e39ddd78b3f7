package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-lite/internal/treefile"
	"github.com/vango-dev/vango-lite/pkg/host/memhost"
	"github.com/vango-dev/vango-lite/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var showOps bool

	cmd := &cobra.Command{
		Use:   "render <tree.json>",
		Short: "Mount a tree file and print its HTML",
		Long: `Mount a JSON tree file into an in-memory document and print the
resulting HTML of the document body.

Examples:
  vango-lite render page.json
  vango-lite render page.json --ops`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], cfg.Render.EventPrefix, showOps, logger)
		},
	}

	cmd.Flags().BoolVar(&showOps, "ops", false, "Also print the host calls made while mounting")

	return cmd
}

func runRender(ctx context.Context, w io.Writer, path, prefix string, showOps bool, logger *slog.Logger) error {
	tree, err := treefile.Load(path)
	if err != nil {
		return err
	}
	doc, err := mountTree(ctx, tree, prefix, logger)
	if err != nil {
		return err
	}

	html := doc.InnerHTML(doc.Body())
	fmt.Fprintln(w, html)
	if showOps {
		fmt.Fprintln(w)
		writeOps(w, doc.Ops())
	}
	logger.Debug("rendered tree", "file", path,
		"ops", len(doc.Ops()),
		"size", humanize.Bytes(uint64(len(html))))
	return nil
}

// mountTree mounts tree into the body of a fresh in-memory document.
func mountTree(ctx context.Context, tree *vdom.VNode, prefix string, logger *slog.Logger) (*memhost.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc := memhost.NewDocument()
	r := vdom.NewRenderer(doc,
		vdom.WithLogger(logger),
		vdom.WithEventPrefix(prefix),
	)
	if err := r.Render(ctx, tree, doc.Body()); err != nil {
		return nil, err
	}
	return doc, nil
}
