package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-lite/internal/treefile"
	"github.com/vango-dev/vango-lite/pkg/host/memhost"
	"github.com/vango-dev/vango-lite/pkg/vdom"
)

func diffCmd() *cobra.Command {
	var showHTML bool

	cmd := &cobra.Command{
		Use:   "diff <old.json> <new.json>",
		Short: "List the host edits that turn one tree into another",
		Long: `Mount the first tree file, patch it into the second, and print a
table of every host call the patch made.

Examples:
  vango-lite diff before.json after.json
  vango-lite diff before.json after.json --html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())
			return runDiff(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], cfg.Render.EventPrefix, showHTML, logger)
		},
	}

	cmd.Flags().BoolVar(&showHTML, "html", false, "Print the patched HTML after the table")

	return cmd
}

func runDiff(ctx context.Context, w io.Writer, oldPath, newPath, prefix string, showHTML bool, logger *slog.Logger) error {
	prev, err := treefile.Load(oldPath)
	if err != nil {
		return err
	}
	next, err := treefile.Load(newPath)
	if err != nil {
		return err
	}

	ops, doc, err := diffTrees(ctx, prev, next, prefix, logger)
	if err != nil {
		return err
	}
	writeOps(w, ops)
	if showHTML {
		fmt.Fprintln(w)
		fmt.Fprintln(w, doc.InnerHTML(doc.Body()))
	}
	return nil
}

// diffTrees mounts prev, patches it into next, and returns the host calls
// made by the patch alone.
func diffTrees(ctx context.Context, prev, next *vdom.VNode, prefix string, logger *slog.Logger) ([]memhost.Op, *memhost.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc := memhost.NewDocument()
	r := vdom.NewRenderer(doc,
		vdom.WithLogger(logger),
		vdom.WithEventPrefix(prefix),
	)
	if err := r.Render(ctx, prev, doc.Body()); err != nil {
		return nil, nil, err
	}
	doc.ResetOps()
	if err := r.Render(ctx, next, doc.Body()); err != nil {
		return nil, nil, err
	}
	return doc.Ops(), doc, nil
}

// writeOps prints ops as a numbered table followed by a one-line summary.
func writeOps(w io.Writer, ops []memhost.Op) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "no host calls")
		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "op", "target", "detail"})
	mutations := 0
	for i, op := range ops {
		if op.IsMutation() {
			mutations++
		}
		tbl.AppendRow(table.Row{i + 1, op.Kind, opTarget(op), opDetail(op)})
	}
	tbl.Render()

	fmt.Fprintf(w, "%s %s, %s %s\n",
		humanize.Comma(int64(len(ops))), english.PluralWord(len(ops), "host call", ""),
		humanize.Comma(int64(mutations)), english.PluralWord(mutations, "mutation", ""))
}

func opTarget(op memhost.Op) string {
	if op.Target == nil {
		return ""
	}
	return op.Target.String()
}

func opDetail(op memhost.Op) string {
	switch {
	case op.Child != nil && op.Ref != nil:
		return fmt.Sprintf("%s before %s", op.Child, op.Ref)
	case op.Child != nil:
		return op.Child.String()
	case op.Name != "" && op.Value != "":
		return fmt.Sprintf("%s=%q", op.Name, op.Value)
	case op.Name != "":
		return op.Name
	default:
		return fmt.Sprintf("%q", op.Value)
	}
}
