// Command shell is an interactive REPL over one relation: a readline prompt
// with a history file and meta-command handling, driving internal/relation,
// internal/scan and internal/project directly.
//
//	shell [-config path] [-history path] <rel>
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/diskrel/diskrel/internal/config"
	"github.com/diskrel/diskrel/internal/project"
	"github.com/diskrel/diskrel/internal/relation"
	"github.com/diskrel/diskrel/internal/scan"
)

func defaultHistoryPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".linhash_history"
	}
	return filepath.Join(dir, ".linhash_history")
}

func main() {
	var cfgPath, histPath string
	flag.StringVar(&cfgPath, "config", "linhash.yaml", "path to YAML config")
	flag.StringVar(&histPath, "history", defaultHistoryPath(), "history file path")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	slog.SetLogLoggerLevel(cfg.SlogLevel())

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: shell <rel>")
		os.Exit(1)
	}
	name := args[0]

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          name + "> ",
		HistoryFile:     histPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	sess := &session{name: name, pageSize: cfg.Storage.PageSize}
	if r, err := relation.Open(name, true, cfg.Storage.PageSize); err == nil {
		sess.r = r
	}
	defer sess.close()

	fmt.Println("type \\help for help")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "\\q" || line == "quit" || line == "exit" {
			return
		}
		if line == "\\help" {
			printHelp()
			continue
		}
		sess.dispatch(line)
	}
}

type session struct {
	name     string
	pageSize int
	r        *relation.Relation
}

func (s *session) close() {
	if s.r != nil {
		_ = s.r.Close()
	}
}

func (s *session) dispatch(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "create":
		s.create(fields[1:])
	case "insert":
		s.insert(rest)
	case "query":
		s.query(fields[1:])
	case "stats":
		s.stats()
	default:
		fmt.Printf("unknown command: %s (try \\help)\n", cmd)
	}
}

func (s *session) create(args []string) {
	if s.r != nil {
		fmt.Println("relation already open")
		return
	}
	if len(args) != 4 {
		fmt.Println("usage: create <n_attrs> <n_pages0> <d0> <choice-vector>")
		return
	}
	nAttrs, e1 := strconv.Atoi(args[0])
	nPages0, e2 := strconv.Atoi(args[1])
	d0, e3 := strconv.Atoi(args[2])
	if e1 != nil || e2 != nil || e3 != nil {
		fmt.Println("create: n_attrs, n_pages0 and d0 must be integers")
		return
	}
	r, err := relation.Create(s.name, nAttrs, nPages0, d0, args[3], s.pageSize)
	if err != nil {
		fmt.Printf("create: %v\n", err)
		return
	}
	s.r = r
	fmt.Printf("created %s\n", s.name)
}

func (s *session) insert(tupleText string) {
	if s.r == nil {
		fmt.Println("no relation open; run create first")
		return
	}
	if tupleText == "" {
		fmt.Println("usage: insert <tuple>")
		return
	}
	bucket, err := s.r.AddToRelation(tupleText)
	if err != nil {
		fmt.Printf("insert: %v\n", err)
		return
	}
	fmt.Printf("inserted into bucket %d\n", bucket)
}

func (s *session) query(fields []string) {
	if s.r == nil {
		fmt.Println("no relation open; run create first")
		return
	}
	verbose := false
	if len(fields) > 0 && fields[0] == "-v" {
		verbose = true
		fields = fields[1:]
	}
	whereIdx := indexOf(fields, "where")
	if whereIdx < 0 {
		fmt.Println("usage: query [-v] <proj-list> where <query-tuple>")
		return
	}
	projList := fields[0]
	queryTuple := strings.Join(fields[whereIdx+1:], "")

	proj, err := project.Parse(projList, s.r.NAttrs())
	if err != nil {
		fmt.Printf("query: %v\n", err)
		return
	}
	sel, err := scan.StartSelection(s.r, queryTuple)
	if err != nil {
		fmt.Printf("query: %v\n", err)
		return
	}
	defer func() { _ = sel.Close() }()

	for {
		t, bucket, ok, err := sel.Next()
		if err != nil {
			fmt.Printf("query: %v\n", err)
			return
		}
		if !ok {
			return
		}
		out, err := proj.Apply(t, s.r.NAttrs())
		if err != nil {
			fmt.Printf("query: %v\n", err)
			return
		}
		if verbose {
			fmt.Printf("[bucket %d] %s\n", bucket, out)
		} else {
			fmt.Println(out)
		}
	}
}

func (s *session) stats() {
	if s.r == nil {
		fmt.Println("no relation open; run create first")
		return
	}
	st, err := s.r.Stats()
	if err != nil {
		fmt.Printf("stats: %v\n", err)
		return
	}
	fmt.Print(st.String())
}

func indexOf(fields []string, target string) int {
	for i, f := range fields {
		if f == target {
			return i
		}
	}
	return -1
}

func printHelp() {
	fmt.Println(`meta commands:
  \q | quit | exit        quit
  \help                   show help

commands:
  create <n_attrs> <n_pages0> <d0> <choice-vector>
  insert <tuple>
  query [-v] <proj-list> where <query-tuple>
  stats`)
}
