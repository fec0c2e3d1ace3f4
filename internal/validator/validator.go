package validator

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	playground "github.com/go-playground/validator/v10"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/config"
	"github.com/arcanaland/greetcard/internal/pack"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	PackPath string
	Results  ValidationResults

	file pack.File
}

func NewValidator(packPath string) *Validator {
	return &Validator{
		PackPath: packPath,
		Results:  ValidationResults{},
	}
}

// Validate checks a pack file. The error is reserved for files that cannot be
// read or parsed; content problems are reported in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.decode(); err != nil {
		return v.Results, err
	}

	v.validateHeader()
	v.validateMessages()
	v.validateColorSchemes()
	v.validateMusic()
	v.validatePatterns()
	v.validateCoverage()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) decode() error {
	if _, err := os.Stat(v.PackPath); os.IsNotExist(err) {
		return fmt.Errorf("pack file not found: %s", v.PackPath)
	}

	meta, err := toml.DecodeFile(v.PackPath, &v.file)
	if err != nil {
		return fmt.Errorf("error parsing pack file: %w", err)
	}

	for _, key := range meta.Undecoded() {
		v.warnf("unknown key ignored: %s", key.String())
	}
	return nil
}

func (v *Validator) validateHeader() {
	err := config.GetValidator().Struct(v.file.Pack)
	if err == nil {
		return
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.errorf("pack header: %v", err)
		return
	}
	for _, fe := range fieldErrs {
		v.errorf("pack.%s is required", strings.ToLower(fe.Field()))
	}
}

func (v *Validator) validateMessages() {
	for _, name := range sortedKeys(v.file.Messages) {
		if _, err := card.ParseType(name); err != nil {
			v.errorf("messages.%s: unknown card type", name)
			continue
		}
		msgs := v.file.Messages[name]
		if len(msgs) == 0 {
			v.errorf("messages.%s: list is empty", name)
		}
		for i, msg := range msgs {
			if strings.TrimSpace(msg) == "" {
				v.errorf("messages.%s[%d]: template is blank", name, i)
			}
		}
	}
}

func (v *Validator) validateColorSchemes() {
	for _, name := range sortedKeys(v.file.ColorSchemes) {
		if _, err := card.ParseTheme(name); err != nil {
			v.errorf("color_schemes.%s: unknown theme", name)
			continue
		}

		err := config.GetValidator().Struct(v.file.ColorSchemes[name])
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				v.errorf("color_schemes.%s.%s: %q is not a hex color", name, strings.ToLower(fe.Field()), fmt.Sprint(fe.Value()))
			}
		} else if err != nil {
			v.errorf("color_schemes.%s: %v", name, err)
		}
	}
}

func (v *Validator) validateMusic() {
	for _, name := range sortedKeys(v.file.Music) {
		if _, err := card.ParseType(name); err != nil {
			v.errorf("music.%s: unknown card type", name)
			continue
		}
		tracks := v.file.Music[name]
		if len(tracks) == 0 {
			v.errorf("music.%s: list is empty", name)
		}
		for _, track := range tracks {
			if !strings.HasPrefix(track, "/") && !strings.HasPrefix(track, "http://") && !strings.HasPrefix(track, "https://") {
				v.warnf("music.%s: %q is neither an absolute path nor a URL", name, track)
			}
		}
	}
}

func (v *Validator) validatePatterns() {
	for _, name := range sortedKeys(v.file.Patterns) {
		if _, err := card.ParseType(name); err != nil {
			v.errorf("patterns.%s: unknown card type", name)
			continue
		}
		patterns := v.file.Patterns[name]
		if len(patterns) == 0 {
			v.errorf("patterns.%s: list is empty", name)
		}

		seen := make(map[card.DecorationType]bool, len(patterns))
		for _, raw := range patterns {
			d, err := card.ParseDecorationType(raw)
			if err != nil {
				v.errorf("patterns.%s: unknown decoration type %q", name, raw)
				continue
			}
			if seen[d] {
				v.warnf("patterns.%s: %s listed more than once", name, d)
			}
			seen[d] = true
		}
	}
}

// validateCoverage warns about entries that will come from the built-in pack
func (v *Validator) validateCoverage() {
	for _, t := range card.AllTypes() {
		if !hasEntry(v.file.Messages, string(t)) {
			v.warnf("messages.%s not defined, built-in templates will be used", t)
		}
		if !hasEntry(v.file.Music, string(t)) {
			v.warnf("music.%s not defined, built-in tracks will be used", t)
		}
		if !hasEntry(v.file.Patterns, string(t)) {
			v.warnf("patterns.%s not defined, built-in decorations will be used", t)
		}
	}
	for _, theme := range card.AllThemes() {
		found := false
		for name := range v.file.ColorSchemes {
			if parsed, err := card.ParseTheme(name); err == nil && parsed == theme {
				found = true
				break
			}
		}
		if !found {
			v.warnf("color_schemes.%s not defined, built-in colors will be used", theme)
		}
	}
}

func hasEntry[T any](entries map[string][]T, t string) bool {
	for name, values := range entries {
		if parsed, err := card.ParseType(name); err == nil && string(parsed) == t && len(values) > 0 {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
