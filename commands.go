package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/Chris-Enlow/PLC-Project/internal/compiler"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/pipeline"
	"github.com/Chris-Enlow/PLC-Project/internal/repl"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/numeric"
)

// errFailed means diagnostics were already printed.
var errFailed = errors.New("failed")

var (
	runCommand = cli.Command{
		Action:    runFile,
		Name:      "run",
		Usage:     "Analyze and interpret a program",
		ArgsUsage: "<file.plc>",
		Flags:     []cli.Flag{maxDepthFlag},
		Description: `The run command evaluates main() and exits with its result.
Program output goes to stdout, diagnostics to stderr.`,
	}
	genCommand = cli.Command{
		Action:    generateFile,
		Name:      "gen",
		Usage:     "Translate a program to Java source",
		ArgsUsage: "<file.plc>",
		Flags:     []cli.Flag{classFlag, outDirFlag},
	}
	checkCommand = cli.Command{
		Action:    checkFiles,
		Name:      "check",
		Usage:     "Analyze programs without running them",
		ArgsUsage: "<file.plc> [more files...]",
	}
	tokensCommand = cli.Command{
		Action:    printTokens,
		Name:      "tokens",
		Usage:     "Print the token stream of a program",
		ArgsUsage: "<file.plc>",
		Flags:     []cli.Flag{rawFlag},
	}
	astCommand = cli.Command{
		Action:    printTree,
		Name:      "ast",
		Usage:     "Print the parsed tree of a program",
		ArgsUsage: "<file.plc>",
	}
	replCommand = cli.Command{
		Action: startREPL,
		Name:   "repl",
		Usage:  "Start an interactive session",
		Flags:  []cli.Flag{maxDepthFlag},
	}
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Description: `The dumpconfig command shows configuration values.`,
	}
)

func compileFile(ctx *cli.Context, mode compiler.Mode, outDir string) (compiler.Result, error) {
	file, err := requireFile(ctx)
	if err != nil {
		return compiler.Result{}, err
	}
	cfg := loadedConfig
	if ctx.IsSet(maxDepthFlag.Name) {
		cfg.Interpreter.MaxCallDepth = ctx.Int(maxDepthFlag.Name)
	}
	if ctx.IsSet(classFlag.Name) {
		cfg.Generator.ClassName = ctx.String(classFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return compiler.Result{}, err
	}
	result := compiler.Compile(&compiler.Options{
		EntryFile: file,
		Mode:      mode,
		Config:    &cfg,
		OutputDir: outDir,
		Debug:     ctx.GlobalBool(debugFlag.Name),
	})
	fmt.Fprint(os.Stderr, result.Output)
	if !result.Success {
		return result, errFailed
	}
	return result, nil
}

func runFile(ctx *cli.Context) error {
	result, err := compileFile(ctx, compiler.ModeRun, "")
	if err != nil {
		return exit(err)
	}
	if v, ok := result.Value.Value.(*big.Int); ok && v.Sign() != 0 {
		return cli.NewExitError("", numeric.ToMachineInt(v))
	}
	return nil
}

func generateFile(ctx *cli.Context) error {
	result, err := compileFile(ctx, compiler.ModeGenerate, ctx.String(outDirFlag.Name))
	if err != nil {
		return exit(err)
	}
	if result.JavaFile != "" {
		fmt.Fprintln(os.Stderr, "wrote", result.JavaFile)
		return nil
	}
	fmt.Print(result.Java)
	return nil
}

func checkFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("check: expected at least one source file")
	}
	p := pipeline.New(pipeline.Options{MaxCallDepth: loadedConfig.Interpreter.MaxCallDepth})
	units, err := p.CheckFiles(context.Background(), ctx.Args())
	if len(p.Diagnostics().Diagnostics()) > 0 {
		p.Diagnostics().EmitAll(os.Stderr)
	}
	pipeline.PrintSummary(os.Stdout, units)
	if err != nil {
		return exit(errFailed)
	}
	return nil
}

func printTokens(ctx *cli.Context) error {
	file, err := requireFile(ctx)
	if err != nil {
		return err
	}
	p := pipeline.New(pipeline.Options{})
	unit, err := p.Load(file)
	if err != nil {
		return err
	}
	if err := p.Lex(unit); err != nil {
		p.Diagnostics().EmitAll(os.Stderr)
		return exit(errFailed)
	}
	if ctx.Bool(rawFlag.Name) {
		lexer.Dump(os.Stdout, file, unit.Tokens)
		return nil
	}
	renderTokens(os.Stdout, unit.Content, unit.Tokens)
	return nil
}

// renderTokens writes one table row per token with its line and column.
func renderTokens(w io.Writer, content string, toks []tokens.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Kind", "Literal", "Line", "Col"})
	table.SetAutoWrapText(false)
	table.AppendBulk(tokenRows(content, toks))
	table.Render()
}

func printTree(ctx *cli.Context) error {
	file, err := requireFile(ctx)
	if err != nil {
		return err
	}
	p := pipeline.New(pipeline.Options{DebugOutput: os.Stdout})
	unit, err := p.Load(file)
	if err != nil {
		return err
	}
	if err := p.Parse(unit); err != nil {
		p.Diagnostics().EmitAll(os.Stderr)
		return exit(errFailed)
	}
	return nil
}

func startREPL(ctx *cli.Context) error {
	depth := loadedConfig.Interpreter.MaxCallDepth
	if ctx.IsSet(maxDepthFlag.Name) {
		depth = ctx.Int(maxDepthFlag.Name)
	}
	r := repl.New(os.Stdout, os.Stderr, repl.Options{
		Prompt:       loadedConfig.REPL.Prompt,
		HistoryFile:  loadedConfig.HistoryPath(),
		MaxCallDepth: depth,
	})
	if !isTerminal(os.Stdin) {
		return r.Serve(os.Stdin)
	}
	fmt.Printf("plc %s. Type :help for help, :quit to exit.\n", version)
	return r.Run()
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	out, err := loadedConfig.Marshal()
	if err != nil {
		return err
	}
	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}

// exit turns errFailed into a silent exit status; other errors are printed
// by main.
func exit(err error) error {
	if errors.Is(err, errFailed) {
		return cli.NewExitError("", 1)
	}
	return err
}

func tokenRows(content string, toks []tokens.Token) [][]string {
	rows := make([][]string, 0, len(toks))
	for i, tok := range toks {
		pos := source.PositionAt(content, tok.Index)
		rows = append(rows, []string{
			strconv.Itoa(i),
			string(tok.Kind),
			tok.Literal,
			strconv.Itoa(pos.Line),
			strconv.Itoa(pos.Column),
		})
	}
	return rows
}
