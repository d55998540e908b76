// Command create builds a new linear-hashed relation on disk.
//
//	create [-config path] <rel> <n_attrs> <n_pages0> <d0> <choice-vector>
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

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
	if len(args) != 5 {
		fmt.Fprintln(os.Stderr, "usage: create <rel> <n_attrs> <n_pages0> <d0> <choice-vector>")
		os.Exit(1)
	}

	name := args[0]
	nAttrs, err1 := strconv.Atoi(args[1])
	nPages0, err2 := strconv.Atoi(args[2])
	d0, err3 := strconv.Atoi(args[3])
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Fprintln(os.Stderr, "create: n_attrs, n_pages0 and d0 must be integers")
		os.Exit(1)
	}

	r, err := relation.Create(name, nAttrs, nPages0, d0, args[4], cfg.Storage.PageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
	if err := r.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
}
