package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"stock_compare/internal/app/di"
	"stock_compare/internal/feature/comparison/adapters"
	"stock_compare/internal/feature/comparison/usecase"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recent comparison outcomes from the diagnostics log" }
func (*historyCmd) Usage() string {
	return `stockcompare history [-n 20]

  Lists recent comparisons recorded in the diagnostics database (DB_DRIVER must be set).
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "number of entries to show")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !cfg.DiagnosticsEnabled() {
		fmt.Fprintln(os.Stderr, "Error: diagnostics database is not configured (set DB_DRIVER)")
		return subcommands.ExitUsageError
	}
	db, err := di.OpenDiagnostics(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	recs, err := adapters.NewComparisonRecorder(db).Recent(ctx, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	renderHistory(os.Stdout, recs)
	return subcommands.ExitSuccess
}

func renderHistory(w io.Writer, recs []usecase.ComparisonRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REQUESTED\tSYMBOLS\tWINDOW\tOUTCOME\tSOURCES")
	for _, r := range recs {
		outcome := "ok"
		if r.Kind != "" {
			outcome = string(r.Kind)
		}
		sources := make([]string, 0, len(r.Sources))
		for _, s := range r.Sources {
			sources = append(sources, source(s))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s..%s\t%s\t%s\n",
			r.RequestedAt.UTC().Format(time.RFC3339),
			strings.Join(r.Symbols, ","),
			r.Start, r.End,
			outcome,
			strings.Join(sources, ", "),
		)
	}
	_ = tw.Flush()
}
