package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
	"github.com/wippyai/js-runtime/runtime"
)

// console is the host module installed as the global console object.
type console struct {
	out io.Writer
	err io.Writer
}

func (c *console) Namespace() string { return "console" }

func (c *console) Log(args ...runtime.Value) { c.print(c.out, args) }

func (c *console) Info(args ...runtime.Value) { c.print(c.out, args) }

func (c *console) Warn(args ...runtime.Value) { c.print(c.err, args) }

func (c *console) Error(args ...runtime.Value) { c.print(c.err, args) }

func (c *console) print(w io.Writer, args []runtime.Value) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

// session is one context with the CLI's host functions installed.
type session struct {
	group *runtime.Group
	ctx   *runtime.Context
	log   *zap.Logger
}

func newSession(cfg runtime.Config, stdout, stderr io.Writer) (*session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
		cfg.Logger = logger
	}

	group, err := runtime.Open(cfg)
	if err != nil {
		return nil, err
	}
	ctx := group.CreateContext()

	hosts := runtime.NewHostRegistry()
	con := &console{out: stdout, err: stderr}
	if err := hosts.RegisterHost(con); err != nil {
		ctx.Release()
		group.Release()
		return nil, err
	}
	if err := hosts.RegisterFunc("", "log", con.Log); err != nil {
		ctx.Release()
		group.Release()
		return nil, err
	}
	if err := hosts.Install(ctx); err != nil {
		ctx.Release()
		group.Release()
		return nil, err
	}

	logger.Debug("session ready",
		zap.String("engine", group.API().Name()),
		zap.Strings("functions", hosts.Names()))
	return &session{group: group, ctx: ctx, log: logger}, nil
}

func (s *session) eval(name, src string) (runtime.Value, error) {
	return s.ctx.EvaluateScript(src, runtime.EvalOptions{SourceURL: name})
}

// preload evaluates each file in order and stops at the first failure.
func (s *session) preload(files []string) error {
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		s.log.Debug("evaluating", zap.String("file", name), zap.Int("bytes", len(src)))
		if _, err := s.eval(name, string(src)); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) close() {
	s.ctx.Release()
	s.group.Release()
}

// describe renders an evaluation error for the terminal. Script exceptions
// read like an uncaught error in a browser console.
func describe(err error, verbose bool) string {
	var ex *runtime.Exception
	if !errors.As(err, &ex) {
		return err.Error()
	}
	name, nerr := ex.Name()
	if nerr != nil {
		return "Uncaught " + ex.Value().String()
	}
	msg := "Uncaught " + name
	if m, merr := ex.Message(); merr == nil && m != "" {
		msg += ": " + m
	}
	if verbose {
		if stack, serr := ex.Stack(); serr == nil && stack != "" {
			msg += "\n" + stack
		}
	}
	return msg
}
