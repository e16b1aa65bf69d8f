package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/Chris-Enlow/PLC-Project/colors"
	"github.com/Chris-Enlow/PLC-Project/internal/diagnostics"
	"github.com/Chris-Enlow/PLC-Project/internal/interpreter"
)

const (
	DefaultPrompt             = "plc> "
	DefaultContinuationPrompt = "...> "

	// sourceName labels REPL input in diagnostics.
	sourceName = "<repl>"
)

const helpText = `Enter declarations (LET, DEF), statements, or expressions.
Blocks continue until their END.
  :scope   list defined names
  :help    show this message
  :quit    leave the REPL`

type Options struct {
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	MaxCallDepth       int
}

// REPL reads inputs, evaluates them in one Session and prints results to out
// and diagnostics to errOut.
type REPL struct {
	opts    Options
	session *Session
	out     io.Writer
	errOut  io.Writer
}

func New(out, errOut io.Writer, opts Options) *REPL {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.ContinuationPrompt == "" {
		opts.ContinuationPrompt = DefaultContinuationPrompt
	}
	var interpOpts []interpreter.Option
	if opts.MaxCallDepth > 0 {
		interpOpts = append(interpOpts, interpreter.WithMaxCallDepth(opts.MaxCallDepth))
	}
	return &REPL{
		opts:    opts,
		session: NewSession(out, interpOpts...),
		out:     out,
		errOut:  errOut,
	}
}

// handle evaluates one complete input. It returns false when the user asked
// to leave.
func (r *REPL) handle(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q":
			return false
		case ":help":
			fmt.Fprintln(r.out, helpText)
		case ":scope":
			fmt.Fprintln(r.out, strings.Join(r.session.Names(), " "))
		default:
			colors.YELLOW.Fprintf(r.errOut, "unknown command %s. Type :help for a list.\n", trimmed)
		}
		return true
	}

	value, err := r.session.Eval(code)
	if err != nil {
		r.report(code, err)
		return true
	}
	if value != "" {
		colors.CYAN.Fprintln(r.out, value)
	}
	return true
}

func (r *REPL) report(code string, err error) {
	cache := diagnostics.NewSourceCache()
	cache.AddSource(sourceName, code)
	diagnostics.NewEmitterWithCache(r.errOut, cache).Emit(diagnostics.FromError(sourceName, code, err))
}

// Serve reads inputs from in until EOF or :quit, without line editing. A new
// input starts once every open block has been closed.
func (r *REPL) Serve(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var b strings.Builder
	for scanner.Scan() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(scanner.Text())
		code := b.String()
		if !Complete(code) {
			continue
		}
		b.Reset()
		if !r.handle(code) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if b.Len() > 0 {
		r.handle(b.String())
	}
	return nil
}

// Run is the interactive loop with line editing and a persistent history.
func (r *REPL) Run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if r.opts.HistoryFile != "" {
		if f, err := os.Open(r.opts.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(r.opts.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		code, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		if strings.TrimSpace(code) != "" {
			ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		}
		if !r.handle(code) {
			return nil
		}
	}
}

// read collects lines until the input is complete. Ctrl-C drops the pending
// input; EOF ends the session.
func (r *REPL) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := r.opts.Prompt
		if b.Len() > 0 {
			prompt = r.opts.ContinuationPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if code := b.String(); Complete(code) {
			return code, true
		}
	}
}
