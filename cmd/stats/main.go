// Command stats prints a relation's linear-hashing counters and per-bucket
// chain lengths.
//
//	stats [-config path] <rel>
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/diskrel/diskrel/internal/config"
	"github.com/diskrel/diskrel/internal/relation"
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
		fmt.Fprintln(os.Stderr, "usage: stats <rel>")
		os.Exit(1)
	}

	r, err := relation.Open(args[0], false, cfg.Storage.PageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = r.Close() }()

	st, err := r.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(st.String())
}
