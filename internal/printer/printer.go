// Package printer renders user-facing CLI status lines with color.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ "+format+"\n", a...)
}

// Info prints an informational message in the default color.
func Info(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

// Detail prints a secondary detail line in cyan.
func Detail(format string, a ...any) {
	cyan.Printf("  %s\n", fmt.Sprintf(format, a...))
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	yellow.Printf("! "+format+"\n", a...)
}

// Errorf prints a formatted error to stderr in red and returns it for
// cobra to propagate.
func Errorf(format string, a ...any) error {
	err := fmt.Errorf(format, a...)
	red.Fprintf(os.Stderr, "%v\n", err)
	return err
}
