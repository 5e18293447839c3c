package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"stock_compare/internal/app/di"
	"stock_compare/internal/feature/comparison/domain/entity"
	"stock_compare/internal/feature/comparison/transport/http/dto"
	"stock_compare/internal/platform/logging"
)

const (
	defaultStart = "2025-01-01"
	defaultEnd   = "2025-10-29"
)

var defaultSymbols = []string{"NVDA", "AMD"}

// comparer is the part of the comparison usecase the command needs.
type comparer interface {
	CompareMany(ctx context.Context, symbols []string, start, end string) entity.ComparisonResult
}

type compareCmd struct {
	start   string
	end     string
	json    bool
	series  bool
	noCache bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare cumulative returns of ticker symbols" }
func (*compareCmd) Usage() string {
	return `stockcompare compare [-start YYYY-MM-DD] [-end YYYY-MM-DD] [-json] [-series] [-no-cache] [symbol...]

  Compares the cumulative return of each symbol since the first trading day of the window.
  Defaults to NVDA and AMD over 2025-01-01..2025-10-29.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", defaultStart, "first day of the window (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", defaultEnd, "last day of the window (YYYY-MM-DD)")
	f.BoolVar(&c.json, "json", false, "print the result as JSON")
	f.BoolVar(&c.series, "series", false, "print every trading day instead of a summary")
	f.BoolVar(&c.noCache, "no-cache", false, "bypass the Redis response cache")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	provider, err := di.NewPriceProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !c.noCache {
		if rdb := di.OpenRedis(ctx, cfg); rdb != nil {
			defer func() { _ = rdb.Close() }()
			provider = di.WithCache(provider, rdb, cfg.Redis.TTL)
		}
	}

	db, err := di.OpenDiagnostics(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	uc, err := di.NewComparisonUsecase(cfg, provider, di.NewRecorder(db), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	symbols := f.Args()
	if len(symbols) == 0 {
		symbols = defaultSymbols
	}
	return c.run(ctx, uc, symbols, os.Stdout, os.Stderr)
}

// run performs one comparison and renders it to out. Rejections are written to errOut.
func (c *compareCmd) run(ctx context.Context, uc comparer, symbols []string, out, errOut io.Writer) subcommands.ExitStatus {
	res := uc.CompareMany(ctx, symbols, c.start, c.end)

	if c.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		var v any = dto.FromResult(res)
		if !res.OK() {
			v = dto.ErrorResponse{Error: res.Message, Kind: string(res.Kind)}
		}
		if err := enc.Encode(v); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if !res.OK() {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if !res.OK() {
		fmt.Fprintln(errOut, res.Message)
		return subcommands.ExitFailure
	}
	for _, n := range res.Notes {
		fmt.Fprintln(errOut, n)
	}
	if c.series {
		renderSeries(out, res)
	} else {
		renderSummary(out, res)
	}
	return subcommands.ExitSuccess
}
