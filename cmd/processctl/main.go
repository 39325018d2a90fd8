// Command processctl manages business processes without going through the
// bot: adding rows, listing them, loading sample data, dry-running reminder
// checks and exporting to Google Sheets.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Tleuberdina/bot-project/internal/config"
	"github.com/Tleuberdina/bot-project/internal/store"
)

const usage = `usage: processctl <command> [flags]

commands:
  add     -name -responsible -frequency -deadline HH:MM -r1 24ч -r2 2ч
  list    [-responsible NAME]
  seed    [-file processes.yaml]
  check   -responsible NAME -at "DD-MM-YYYY HH:MM"
  export`

func main() {
	if len(os.Args) < 2 {
		die(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		die("load config: %v", err)
	}

	ctx := context.Background()
	repo, err := store.Open(ctx, cfg)
	if err != nil {
		die("open store: %v", err)
	}

	err = run(ctx, cfg, repo, os.Args[1], os.Args[2:], os.Stdout)
	_ = repo.Close()
	if err != nil {
		die("%s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, cfg config.Config, repo store.Repo, name string, args []string, out io.Writer) error {
	switch name {
	case "add":
		return runAdd(ctx, repo, args, out)
	case "list":
		return runList(ctx, repo, args, out)
	case "seed":
		return runSeed(ctx, repo, args, out)
	case "check":
		return runCheck(ctx, repo, args, out)
	case "export":
		return runExport(ctx, cfg, repo, out)
	default:
		return fmt.Errorf("unknown command\n%s", usage)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
