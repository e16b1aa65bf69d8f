package compiler

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/naoina/toml"

	"github.com/Chris-Enlow/PLC-Project/internal/codegen/javagen"
	"github.com/Chris-Enlow/PLC-Project/internal/interpreter"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type LogConfig struct {
	Level string // crit, error, warn, info, debug
	Color bool
}

type InterpreterConfig struct {
	MaxCallDepth int
}

type GeneratorConfig struct {
	ClassName string `toml:",omitempty"`
}

type REPLConfig struct {
	HistoryFile string
	Prompt      string
}

type Config struct {
	Log         LogConfig
	Interpreter InterpreterConfig
	Generator   GeneratorConfig
	REPL        REPLConfig
}

func DefaultConfig() Config {
	return Config{
		Log:         LogConfig{Level: "info", Color: true},
		Interpreter: InterpreterConfig{MaxCallDepth: interpreter.DefaultMaxCallDepth},
		Generator:   GeneratorConfig{ClassName: javagen.DefaultClassName},
		REPL:        REPLConfig{HistoryFile: "~/.plc_history", Prompt: "plc> "},
	}
}

// LoadConfig decodes file over cfg; fields absent from the file keep their
// current values.
func LoadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate rejects values no component can honor.
func (cfg *Config) Validate() error {
	if _, err := log15.LvlFromString(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.Log.Level)
	}
	if cfg.Interpreter.MaxCallDepth < 1 {
		return fmt.Errorf("MaxCallDepth must be positive, got %d", cfg.Interpreter.MaxCallDepth)
	}
	return nil
}

// Marshal renders cfg as TOML.
func (cfg *Config) Marshal() ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// HistoryPath is the REPL history file with a leading ~ expanded.
func (cfg *Config) HistoryPath() string {
	path := cfg.REPL.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
