package doctable

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"semantic-exit/exitcodes"
)

// Matches "| 80 | `UsageError` | description |" rows of the README table.
var rowPattern = regexp.MustCompile("^\\| (\\d+) \\| `(\\w+)` \\| (.*) \\|\\s*$")

// Row is one documented exit code.
type Row struct {
	Line        int
	Value       int
	Name        string
	Description string
}

// MismatchKind classifies a disagreement between the docs and the registry.
type MismatchKind string

const (
	Undefined    MismatchKind = "undefined"    // documented but not defined
	WrongValue   MismatchKind = "wrong_value"  // defined under a different value
	WrongName    MismatchKind = "wrong_name"   // value defined under a different name
	Undocumented MismatchKind = "undocumented" // defined but not documented
	Duplicate    MismatchKind = "duplicate"    // documented more than once
)

// Mismatch describes one documentation error.
type Mismatch struct {
	Kind     MismatchKind
	Name     string
	Value    int
	Expected int // registry value for WrongValue
	Line     int
}

func (m Mismatch) String() string {
	switch m.Kind {
	case Undefined:
		return fmt.Sprintf("line %d: %s (%d) is documented but not defined", m.Line, m.Name, m.Value)
	case WrongValue:
		return fmt.Sprintf("line %d: %s is defined as %d, documented as %d", m.Line, m.Name, m.Expected, m.Value)
	case WrongName:
		return fmt.Sprintf("line %d: %d is defined as %s, documented as %s", m.Line, m.Value, exitcodes.Code(m.Value), m.Name)
	case Undocumented:
		return fmt.Sprintf("%s (%d) is defined but undocumented", m.Name, m.Value)
	case Duplicate:
		return fmt.Sprintf("line %d: %s (%d) is documented more than once", m.Line, m.Name, m.Value)
	default:
		return string(m.Kind)
	}
}

// Parse extracts the exit code table rows from a markdown document.
func Parse(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		m := rowPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse value %q: %w", line, m[1], err)
		}
		rows = append(rows, Row{
			Line:        line,
			Value:       value,
			Name:        m[2],
			Description: strings.TrimSpace(m[3]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return rows, nil
}

// Verify checks rows against the registry in both directions.
// An empty result means the documentation is in sync.
func Verify(rows []Row) []Mismatch {
	var out []Mismatch
	documented := make(map[exitcodes.Code]bool)

	for _, row := range rows {
		byName, nameOK := exitcodes.Lookup(row.Name)
		byValue, valueErr := exitcodes.Parse(row.Value)

		switch {
		case !nameOK && valueErr != nil:
			out = append(out, Mismatch{Kind: Undefined, Name: row.Name, Value: row.Value, Line: row.Line})
			continue
		case nameOK && byName.Int() != row.Value:
			out = append(out, Mismatch{Kind: WrongValue, Name: row.Name, Value: row.Value, Expected: byName.Int(), Line: row.Line})
			continue
		case !nameOK:
			out = append(out, Mismatch{Kind: WrongName, Name: row.Name, Value: row.Value, Line: row.Line})
			continue
		}

		if documented[byValue] {
			out = append(out, Mismatch{Kind: Duplicate, Name: row.Name, Value: row.Value, Line: row.Line})
			continue
		}
		documented[byValue] = true
	}

	for _, c := range exitcodes.All() {
		if !documented[c] {
			out = append(out, Mismatch{Kind: Undocumented, Name: c.String(), Value: c.Int()})
		}
	}
	return out
}

// Render writes the registry as the canonical markdown table.
func Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "| Exit Code | Name | Description |")
	fmt.Fprintln(bw, "|---|---|---|")
	for _, c := range exitcodes.All() {
		fmt.Fprintf(bw, "| %d | `%s` | %s |\n", c.Int(), c, c.Description())
	}
	return bw.Flush()
}
