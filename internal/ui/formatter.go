package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer writes the human-readable progress of a run
type Printer struct {
	out      io.Writer
	colorize bool
}

// NewPrinter creates a Printer writing to out. Colors are used when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, colorize: IsTerminal(out) && !color.NoColor}
}

// NewPlainPrinter creates a Printer that never emits color codes
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Colorized reports whether the printer emits colors
func (p *Printer) Colorized() bool { return p.colorize }

// Writer returns the underlying writer, used to stream tool output
func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (p *Printer) line(c *color.Color, format string, args ...any) {
	c.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Banner prints the application name and version
func (p *Printer) Banner(name, version string) {
	p.line(p.style(color.FgWhite, color.Bold, color.BgBlue), "%s %s", name, version)
}

// Step announces a pipeline stage
func (p *Printer) Step(format string, args ...any) {
	p.line(p.style(color.FgGreen), format, args...)
}

// Comment prints an advisory note
func (p *Printer) Comment(format string, args ...any) {
	p.line(p.style(color.FgYellow), format, args...)
}

// Warning prints a highlighted, non-blocking warning
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.style(color.FgBlack, color.BgYellow), format, args...)
}

// Success prints the final acknowledgement
func (p *Printer) Success(format string, args ...any) {
	p.line(p.style(color.FgGreen, color.Bold), "✓ "+format, args...)
}

// Failure prints the target of a failed check followed by the tool output
func (p *Printer) Failure(target, output string) {
	if target != "" {
		p.line(p.style(color.FgYellow), "%s", target)
	}
	if output = strings.TrimSpace(output); output != "" {
		p.line(p.style(color.FgRed), "%s", output)
	}
}

// Info prints plain text
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// PrintFileList prints files as a tree-like list
func (p *Printer) PrintFileList(files []string) {
	if len(files) == 0 {
		p.Comment("No staged files")
		return
	}
	p.line(p.style(color.FgGreen), "Found %d staged file(s):", len(files))
	for i, file := range files {
		if i == len(files)-1 {
			p.line(p.style(color.FgCyan), "└── %s", file)
		} else {
			p.line(p.style(color.FgCyan), "├── %s", file)
		}
	}
}
