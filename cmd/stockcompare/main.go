// Command stockcompare compares baseline-relative cumulative returns of ticker symbols.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"stock_compare/internal/platform/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&compareCmd{}, "")
	commander.Register(&historyCmd{}, "diagnostics")
	commander.Register(&tokenCmd{}, "api")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// loadConfig reads configuration from CONFIG_PATH (or config.yaml) and the environment.
func loadConfig() (*config.Config, error) {
	return config.Load(config.PathFromEnv())
}
