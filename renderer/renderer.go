// Package renderer formats projection results as markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/fundsim"
)

// reportRenderer formats the output of a report into a markdown string.
type reportRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *reportRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func money(v float64) string   { return fundsim.M(v).String() }
func signed(v float64) string  { return fundsim.M(v).SignedString() }
func percent(v float64) string { return fmt.Sprintf("%+.2f%%", v*100) }
