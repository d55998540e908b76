// Command query runs a partial-match query against a relation.
//
//	query [-v] [-config path] <proj-list> from <rel> where <query-tuple>
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/diskrel/diskrel/internal/config"
	"github.com/diskrel/diskrel/internal/project"
	"github.com/diskrel/diskrel/internal/relation"
	"github.com/diskrel/diskrel/internal/scan"
)

func main() {
	var cfgPath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "linhash.yaml", "path to YAML config")
	flag.BoolVar(&verbose, "v", false, "print the bucket id each yielded tuple came from")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	slog.SetLogLoggerLevel(cfg.SlogLevel())

	args := flag.Args()
	if len(args) < 4 || args[1] != "from" || args[3] != "where" {
		fmt.Fprintln(os.Stderr, "usage: query [-v] <proj-list> from <rel> where <query-tuple>")
		os.Exit(1)
	}
	projList := args[0]
	relName := args[2]
	queryTuple := strings.Join(args[4:], "")

	r, err := relation.Open(relName, false, cfg.Storage.PageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = r.Close() }()

	proj, err := project.Parse(projList, r.NAttrs())
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}

	sel, err := scan.StartSelection(r, queryTuple)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = sel.Close() }()

	for {
		t, bucket, ok, err := sel.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "query: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			break
		}
		out, err := proj.Apply(t, r.NAttrs())
		if err != nil {
			fmt.Fprintf(os.Stderr, "query: %v\n", err)
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("[bucket %d] %s\n", bucket, out)
		} else {
			fmt.Println(out)
		}
	}
}
