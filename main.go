package main

import (
	"fmt"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/Chris-Enlow/PLC-Project/colors"
	"github.com/Chris-Enlow/PLC-Project/internal/compiler"
)

const version = "0.1.0"

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level (crit, error, warn, info, debug); overrides the config",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "Dump the parsed tree before later stages",
	}
	maxDepthFlag = cli.IntFlag{
		Name:  "maxdepth",
		Usage: "Maximum interpreter call depth; overrides the config",
	}
	classFlag = cli.StringFlag{
		Name:  "class",
		Usage: "Generated class name (defaults to the file name)",
	}
	outDirFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Directory to write <Class>.java into; prints to stdout when empty",
	}
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Print tokens one per line as file@offset instead of a table",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "plc"
	app.Usage = "interpret or translate PLC programs"
	app.Version = version
	app.Flags = []cli.Flag{configFileFlag, verbosityFlag, noColorFlag, debugFlag}
	app.Before = setup
	app.Commands = []cli.Command{
		runCommand,
		genCommand,
		checkCommand,
		tokensCommand,
		astCommand,
		replCommand,
		dumpConfigCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		colors.RED.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadedConfig is filled by setup before any command runs.
var loadedConfig = compiler.DefaultConfig()

// setup loads the config file and applies global flags, then installs the
// root log handler.
func setup(ctx *cli.Context) error {
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := compiler.LoadConfig(file, &loadedConfig); err != nil {
			return err
		}
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		loadedConfig.Log.Level = ctx.GlobalString(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		loadedConfig.Log.Color = false
	}
	if err := loadedConfig.Validate(); err != nil {
		return err
	}

	useColor := loadedConfig.Log.Color && isTerminal(os.Stderr)
	colors.SetEnabled(useColor)

	lvl, _ := log15.LvlFromString(loadedConfig.Log.Level)
	var output io.Writer = os.Stderr
	if useColor {
		output = colorable.NewColorableStderr()
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(output, log15.TerminalFormat())))
	log15.Debug("Configuration loaded", "level", loadedConfig.Log.Level, "maxdepth", loadedConfig.Interpreter.MaxCallDepth)
	return nil
}

// requireFile returns the single positional source file argument.
func requireFile(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one source file, got %d", ctx.Command.Name, ctx.NArg())
	}
	return ctx.Args().First(), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
