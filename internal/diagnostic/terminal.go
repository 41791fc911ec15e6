package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

// Render writes all diagnostics to w, severity-colored, errors last so they
// stay visible in a scrolling terminal.
func Render(w io.Writer, d *Diagnostics) {
	for _, diag := range d.Infos {
		fmt.Fprintf(w, "%s %s\n", infoColor.Sprint("info:"), diag)
	}

	for _, diag := range d.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnColor.Sprint("warning:"), diag)
	}

	for _, diag := range d.Errors {
		fmt.Fprintf(w, "%s %s\n", errColor.Sprint("error:"), diag)
	}
}

// Summary returns a one-line count summary, e.g. "2 errors, 1 warning".
func Summary(d *Diagnostics) string {
	return fmt.Sprintf("%d errors, %d warnings", len(d.Errors), len(d.Warnings))
}
