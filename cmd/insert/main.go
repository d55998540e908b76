// Command insert reads NL-terminated tuples from stdin and adds each one to
// a relation, reporting the line number of any rejected tuple.
//
//	insert [-config path] <rel>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/diskrel/diskrel/internal/config"
	"github.com/diskrel/diskrel/internal/relation"
	"github.com/diskrel/diskrel/internal/tuple"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "linhash.yaml", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	slog.SetLogLoggerLevel(cfg.SlogLevel())

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: insert <rel>")
		os.Exit(1)
	}

	r, err := relation.Open(args[0], true, cfg.Storage.PageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insert: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = r.Close() }()

	sc := bufio.NewScanner(os.Stdin)
	lineNo := 0
	failed := false
	for {
		line, vals, ok, err := tuple.ReadNext(sc, r.NAttrs())
		if !ok {
			if err != nil {
				fmt.Fprintf(os.Stderr, "insert: read stdin: %v\n", err)
				os.Exit(1)
			}
			break
		}
		lineNo++
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert: line %d: %v\n", lineNo, err)
			failed = true
			continue
		}
		if _, err := r.AddToRelation(tuple.Serialize(vals)); err != nil {
			fmt.Fprintf(os.Stderr, "insert: line %d (%q): %v\n", lineNo, line, err)
			failed = true
			continue
		}
	}

	if failed {
		os.Exit(1)
	}
}
