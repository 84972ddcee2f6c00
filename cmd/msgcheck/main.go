// Command msgcheck validates a message catalog offline and optionally exports
// it as a SQLite snapshot the server can load directly.
//
//	msgcheck [-export out.db] [path]
//
// The path defaults to $MESSAGES_FILE_PATH, then ./data/messages.json.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/politely-failed/internal/domain"
	"github.com/tbourn/politely-failed/internal/repo"
	"github.com/tbourn/politely-failed/internal/sysutil"
)

const defaultPath = "./data/messages.json"

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("msgcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	export := fs.String("export", "", "write the validated catalog to this SQLite file")
	timeout := fs.Duration("timeout", 30*time.Second, "overall time limit")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	sysutil.ConfigureLogging(stderr, level, true, "msgcheck")

	path := sysutil.FirstNonEmpty(fs.Arg(0), os.Getenv("MESSAGES_FILE_PATH"), defaultPath)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store := repo.NewStore(repo.OpenSource(path))
	db, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "invalid catalog %s: %v\n", path, err)
		return 1
	}

	report(stdout, path, db)

	if *export != "" {
		if err := exportSnapshot(ctx, *export, db); err != nil {
			fmt.Fprintf(stderr, "export %s: %v\n", *export, err)
			return 1
		}
		fmt.Fprintf(stdout, "snapshot written to %s\n", *export)
	}
	return 0
}

// report prints the version, a per-pair count table, and the total.
func report(w io.Writer, path string, db *domain.MessageDatabase) {
	fmt.Fprintf(w, "source:  %s\nversion: %s\n\n", path, db.Version)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "CATEGORY")
	for _, t := range domain.Tones() {
		fmt.Fprintf(tw, "\t%s", t)
	}
	fmt.Fprintln(tw)
	for _, c := range domain.Categories() {
		fmt.Fprint(tw, c)
		for _, t := range domain.Tones() {
			msgs, _ := db.Messages(c, t)
			fmt.Fprintf(tw, "\t%d", len(msgs))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\ntotal: %d messages\n", db.Count())
}

func exportSnapshot(ctx context.Context, out string, db *domain.MessageDatabase) error {
	gdb, err := repo.OpenSQLite(out)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := repo.SaveSnapshot(ctx, gdb, db); err != nil {
		return err
	}
	log.Debug().Str("out", out).Int("messages", db.Count()).Msg("snapshot saved")
	return nil
}
