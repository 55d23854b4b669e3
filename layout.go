package materials

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Layout describes where the bill of quantities lives in the sheet. Columns
// are spreadsheet letters.
type Layout struct {
	HeaderRowsToSkip int    `yaml:"headerRowsToSkip"`
	IdentifierColumn string `yaml:"identifierColumn"`
	QuantityColumn   string `yaml:"quantityColumn"`
	UnitColumn       string `yaml:"unitColumn"`
	PreviewRows      int    `yaml:"previewRows"`
}

func DefaultLayout() Layout {
	return Layout{
		HeaderRowsToSkip: 14,
		IdentifierColumn: "A",
		QuantityColumn:   "H",
		UnitColumn:       "I",
		PreviewRows:      5,
	}
}

// LoadLayout reads a YAML layout and fills unset (zero) keys from
// DefaultLayout. A zero headerRowsToSkip therefore means the default; use
// the command line to skip no rows at all.
func LoadLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := yaml.NewDecoder(r).Decode(&l); err != nil && err != io.EOF {
		return Layout{}, fmt.Errorf("decoding layout: %w", err)
	}
	if err := mergo.Merge(&l, DefaultLayout()); err != nil {
		return Layout{}, err
	}
	l.normalize()
	return l, l.Validate()
}

func LoadLayoutFile(path string) (Layout, error) {
	fd, err := os.Open(path)
	if err != nil {
		return Layout{}, err
	}
	defer fd.Close()
	return LoadLayout(fd)
}

// SetColumns sets the three columns from a comma separated list in
// identifier, quantity, unit order, e.g. "A,H,I".
func (l *Layout) SetColumns(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("columns %q: want three comma separated columns", s)
	}
	l.IdentifierColumn = strings.TrimSpace(parts[0])
	l.QuantityColumn = strings.TrimSpace(parts[1])
	l.UnitColumn = strings.TrimSpace(parts[2])
	l.normalize()
	return l.Validate()
}

// OverrideColumns replaces the columns given as non-empty strings and
// leaves the others as they are.
func (l *Layout) OverrideColumns(identifier, quantity, unit string) error {
	if identifier != "" {
		l.IdentifierColumn = strings.TrimSpace(identifier)
	}
	if quantity != "" {
		l.QuantityColumn = strings.TrimSpace(quantity)
	}
	if unit != "" {
		l.UnitColumn = strings.TrimSpace(unit)
	}
	l.normalize()
	return l.Validate()
}

func (l *Layout) normalize() {
	l.IdentifierColumn = strings.ToUpper(l.IdentifierColumn)
	l.QuantityColumn = strings.ToUpper(l.QuantityColumn)
	l.UnitColumn = strings.ToUpper(l.UnitColumn)
}

func (l Layout) Validate() error {
	if l.HeaderRowsToSkip < 0 {
		return fmt.Errorf("header rows to skip must not be negative (%d)", l.HeaderRowsToSkip)
	}
	if l.PreviewRows < 0 {
		return fmt.Errorf("preview rows must not be negative (%d)", l.PreviewRows)
	}
	for _, col := range []string{l.IdentifierColumn, l.QuantityColumn, l.UnitColumn} {
		if _, err := excelize.ColumnNameToNumber(col); err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
	}
	return nil
}

// columns returns the zero-based indexes of the identifier, quantity and
// unit columns.
func (l Layout) columns() ([3]int, error) {
	var idx [3]int
	for i, col := range []string{l.IdentifierColumn, l.QuantityColumn, l.UnitColumn} {
		n, err := excelize.ColumnNameToNumber(col)
		if err != nil {
			return idx, err
		}
		idx[i] = n - 1
	}
	return idx, nil
}
