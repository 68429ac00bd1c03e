// Package config loads calculator settings from a CUE file validated against
// an embedded schema. Missing fields take the schema defaults.
//
// Example file:
//
//	history_size: 10
//	precision:    4
//	keys: {
//		"q": "C"
//		"x": "*"
//	}
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/abacus/internal/calc"
)

//go:embed schema.cue
var schemaCUE string

// Config holds the calculator settings.
type Config struct {
	HistorySize int               `json:"history_size"`
	Precision   int               `json:"precision"`
	Keys        map[string]string `json:"keys,omitempty"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		HistorySize: calc.DefaultHistorySize,
		Precision:   calc.DefaultPrecision,
		Keys:        map[string]string{},
	}
}

// Error reports an invalid configuration, with the CUE position when known.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates a CUE config file. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema and decodes it.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("abacus/schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(data, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	cfg := Default()

	size, err := lookupInt(v, "history_size")
	if err != nil {
		return Config{}, err
	}
	cfg.HistorySize = size

	precision, err := lookupInt(v, "precision")
	if err != nil {
		return Config{}, err
	}
	cfg.Precision = precision

	keys, err := v.LookupPath(cue.ParsePath("keys")).Fields()
	if err != nil {
		return Config{}, formatCUEError(err)
	}
	for keys.Next() {
		tok, err := keys.Value().String()
		if err != nil {
			return Config{}, formatCUEError(err)
		}
		cfg.Keys[keys.Selector().Unquoted()] = tok
	}

	return cfg, nil
}

func lookupInt(v cue.Value, field string) (int, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &Error{Field: field, Message: "missing", Pos: v.Pos()}
	}
	fv, _ = fv.Default()
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(n), nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
