package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"semantic-exit/exitcodes"
)

var categoryColors = map[exitcodes.Category]*color.Color{
	exitcodes.CategorySuccess:  color.New(color.FgGreen),
	exitcodes.CategoryFailure:  color.New(color.FgRed),
	exitcodes.CategoryUser:     color.New(color.FgYellow),
	exitcodes.CategorySoftware: color.New(color.FgMagenta),
	exitcodes.CategorySignal:   color.New(color.FgCyan),
	exitcodes.CategoryReserved: color.New(color.FgHiBlack),
}

// paintCategory renders a category name padded to width, in its color.
func paintCategory(c exitcodes.Category, width int) string {
	return categoryColors[c].Sprintf("%-*s", width, c.String())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return exitcodes.Wrap(fmt.Errorf("encode json: %w", err), exitcodes.InternalError)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return exitcodes.Wrap(fmt.Errorf("encode yaml: %w", err), exitcodes.InternalError)
	}
	return enc.Close()
}
