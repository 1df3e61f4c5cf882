package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/js-runtime/engine"
	_ "github.com/wippyai/js-runtime/engine/gojs"
	_ "github.com/wippyai/js-runtime/engine/jsc"
	"github.com/wippyai/js-runtime/runtime"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML settings file (engine, display_depth, verbose, preload)")
		engineName  = flag.String("engine", "", "Engine backend ("+strings.Join(engine.Names(), ", ")+")")
		expr        = flag.String("e", "", "Evaluate a script given on the command line")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging and stack traces")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: run [-engine name] [-v] file.js ...")
		fmt.Fprintln(os.Stderr, "       run [-engine name] -e 'script'")
		fmt.Fprintln(os.Stderr, "       run -i  (interactive mode)")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	fc := &fileConfig{}
	if *configFile != "" {
		loaded, err := loadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fc = loaded
	}
	if *engineName != "" {
		fc.Engine = *engineName
	}
	if *verbose {
		fc.Verbose = true
	}

	cfg := fc.runtimeConfig()
	cfg.Logger = zap.NewNop()
	if fc.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Logger = l
		engine.SetLogger(l)
		runtime.SetLogger(l)
	}

	files := flag.Args()
	var err error
	if *interactive || (*expr == "" && len(files) == 0 && term.IsTerminal(int(os.Stdin.Fd()))) {
		err = runInteractive(cfg, fc.Preload, fc.Verbose)
	} else {
		err = run(cfg, fc.Preload, *expr, files)
	}
	_ = cfg.Logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err, fc.Verbose))
		os.Exit(1)
	}
}

// run evaluates the preloads, the inline script and then each file in
// order, all in one context. With no script or files the source is read
// from stdin.
func run(cfg runtime.Config, preload []string, expr string, files []string) error {
	s, err := newSession(cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.preload(preload); err != nil {
		return err
	}

	if expr == "" && len(files) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		_, err = s.eval("<stdin>", string(src))
		return err
	}

	if expr != "" {
		v, err := s.eval("<eval>", expr)
		if err != nil {
			return err
		}
		if !v.IsUndefined() {
			fmt.Println(v)
		}
	}
	return s.preload(files)
}
