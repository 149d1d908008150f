package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"sigs.k8s.io/yaml"
)

// OutputFormat selects how listings are printed.
type OutputFormat string

// Output formats.
const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// ValidOutputFormats returns all supported output formats.
func ValidOutputFormats() []OutputFormat {
	return []OutputFormat{FormatTable, FormatJSON, FormatYAML}
}

func (f OutputFormat) validate() error {
	for _, v := range ValidOutputFormats() {
		if f == v {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %v)", f, ValidOutputFormats())
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// printListing writes v as JSON or YAML, or headers and rows as a table.
func printListing(format OutputFormat, v any, headers []string, rows [][]string) error {
	if err := format.validate(); err != nil {
		return err
	}

	var out []byte
	var err error
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(tableBorderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return tableHeaderStyle
				}
				return tableCellStyle
			}).
			Headers(headers...).
			Rows(rows...)
		out = []byte(t.Render() + "\n")
	}

	_, err = stdout.Write(out)
	return err
}
