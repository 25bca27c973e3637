package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/syntax"
)

// ValidationError aggregates settings failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "settings: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("settings validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadSettings reads a syntax configuration from disk. Files ending in .yml
// or .yaml are decoded as YAML, anything else uses the line format.
func LoadSettings(path string) (*syntax.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("settings: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("settings: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("settings: open %s: %w", absPath, err)
	}
	defer file.Close()

	var opts syntax.Options
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yml", ".yaml":
		opts, err = DecodeSettingsYAML(file)
	default:
		opts, err = ParseSettings(file)
	}
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", absPath, err)
	}
	cfg, err := syntax.New(opts)
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", absPath, err)
	}
	return cfg, nil
}

// ParseSettings reads the line format. Lines are lowercased and may carry a
// trailing # comment. Recognised directives:
//
//	left=  right=        result placement
//	op()  ()op           prefix or postfix syntax for both families
//	(op)                 infix syntax for binary operators
//	add plus             alias for a canonical operator
//	[ add plus]          same, bracketed
//
// A later line overrides an earlier one for the same setting.
func ParseSettings(r io.Reader) (syntax.Options, error) {
	opts := syntax.Options{Aliases: make(map[ast.Operator]string)}
	var errs ValidationError

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.ToLower(scanner.Text())
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "left=":
			opts.Placement = syntax.ResultLeft
		case "right=":
			opts.Placement = syntax.ResultRight
		case string(syntax.FormPrefix), string(syntax.FormPostfix):
			opts.Unary = syntax.Form(line)
			opts.Binary = syntax.Form(line)
		case string(syntax.FormInfix):
			opts.Binary = syntax.FormInfix
		default:
			fields := strings.Fields(line)
			if len(fields) == 3 && fields[0] == "[" {
				fields = []string{fields[1], strings.TrimSuffix(fields[2], "]")}
			}
			if len(fields) != 2 {
				errs.Issues = append(errs.Issues, fmt.Sprintf("line %d: unrecognised directive %q", lineNo, line))
				continue
			}
			op, ok := ast.ParseOperator(fields[0])
			if !ok {
				errs.Issues = append(errs.Issues, fmt.Sprintf("line %d: unknown operator %q", lineNo, fields[0]))
				continue
			}
			opts.Aliases[op] = fields[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return opts, fmt.Errorf("read: %w", err)
	}
	if len(errs.Issues) > 0 {
		return opts, &errs
	}
	return opts, nil
}

type settingsFile struct {
	Placement string            `yaml:"placement"`
	Unary     string            `yaml:"unary"`
	Binary    string            `yaml:"binary"`
	Aliases   map[string]string `yaml:"aliases"`
}

// DecodeSettingsYAML reads the YAML settings format:
//
//	placement: right
//	unary: ()op
//	binary: (op)
//	aliases:
//	  add: +
//
// Unknown keys are rejected.
func DecodeSettingsYAML(r io.Reader) (syntax.Options, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw settingsFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return syntax.Options{}, nil
		}
		return syntax.Options{}, fmt.Errorf("parse: %w", err)
	}
	return raw.toOptions()
}

func (sf settingsFile) toOptions() (syntax.Options, error) {
	opts := syntax.Options{
		Placement: syntax.Placement(strings.ToLower(strings.TrimSpace(sf.Placement))),
		Unary:     syntax.Form(strings.ToLower(strings.TrimSpace(sf.Unary))),
		Binary:    syntax.Form(strings.ToLower(strings.TrimSpace(sf.Binary))),
		Aliases:   make(map[ast.Operator]string, len(sf.Aliases)),
	}
	var errs ValidationError
	names := make([]string, 0, len(sf.Aliases))
	for name := range sf.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		op, ok := ast.ParseOperator(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("aliases.%s: unknown operator", name))
			continue
		}
		opts.Aliases[op] = strings.ToLower(strings.TrimSpace(sf.Aliases[name]))
	}
	if len(errs.Issues) > 0 {
		return opts, &errs
	}
	return opts, nil
}

// EncodeSettingsYAML renders cfg in the YAML settings format.
func EncodeSettingsYAML(cfg *syntax.Config) ([]byte, error) {
	opts := cfg.Options()
	raw := settingsFile{
		Placement: string(opts.Placement),
		Unary:     string(opts.Unary),
		Binary:    string(opts.Binary),
		Aliases:   make(map[string]string, len(opts.Aliases)),
	}
	for op, alias := range opts.Aliases {
		if alias != op.String() {
			raw.Aliases[op.String()] = alias
		}
	}
	if len(raw.Aliases) == 0 {
		raw.Aliases = nil
	}
	return yaml.Marshal(raw)
}
