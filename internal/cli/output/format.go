// Package output renders command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json, yaml (or yml). Empty means table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// Printer writes results to out in one format. Status messages go to errOut
// so they never corrupt machine-readable output.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	color  bool
}

func NewPrinter(out, errOut io.Writer, format Format, color bool) *Printer {
	return &Printer{
		out:    out,
		errOut: errOut,
		format: format,
		color:  color,
	}
}

func (p *Printer) Format() Format {
	return p.format
}

func (p *Printer) ColorEnabled() bool {
	return p.color
}

// Print renders data in the configured format. Table output needs a
// TableRenderer; anything else falls back to JSON.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// PrintTables renders each table separated by a blank line. Non-table
// formats print only the first value, which is expected to carry the rest.
func (p *Printer) PrintTables(tables ...TableRenderer) error {
	if len(tables) == 0 {
		return nil
	}
	if p.format != FormatTable {
		return p.Print(tables[0])
	}
	for i, t := range tables {
		if i > 0 {
			_, _ = fmt.Fprintln(p.out)
		}
		if err := PrintTable(p.out, t); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

func (p *Printer) Error(msg string) {
	p.status("31", msg)
}

func (p *Printer) Warning(msg string) {
	p.status("33", msg)
}

func (p *Printer) status(code, msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.errOut, "\033[%sm%s\033[0m\n", code, msg)
		return
	}
	_, _ = fmt.Fprintln(p.errOut, msg)
}
