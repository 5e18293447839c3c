package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	jwtmw "stock_compare/internal/platform/jwt"
)

type tokenCmd struct {
	subject string
	ttl     time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a bearer token for the HTTP API" }
func (*tokenCmd) Usage() string {
	return `stockcompare token -subject <name> [-ttl 24h]

  Prints a JWT signed with JWT_SECRET. The server requires it when JWT_SECRET is set.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subject, "subject", "", "client name stored in the token subject")
	f.DurationVar(&c.ttl, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
}

func (c *tokenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ttl := c.ttl
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}
	return c.run(jwtmw.NewGenerator(cfg.Auth.JWTSecret, ttl), os.Stdout, os.Stderr)
}

func (c *tokenCmd) run(gen jwtmw.Generator, out, errOut io.Writer) subcommands.ExitStatus {
	token, err := gen.GenerateToken(c.subject)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Fprintln(out, token)
	return subcommands.ExitSuccess
}
