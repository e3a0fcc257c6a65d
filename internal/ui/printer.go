// Package ui prints user-facing messages in color.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	colorTitle   = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorWarn    = lipgloss.Color("#e0af68")
	colorMuted   = lipgloss.Color("#565f89")
	colorCommand = lipgloss.Color("#bb9af7")
)

// Printer writes styled lines to one writer. Colors are dropped
// automatically when the writer is not a terminal.
type Printer struct {
	w io.Writer

	title   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
	command lipgloss.Style
}

// New returns a Printer bound to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(colorTitle),
		success: r.NewStyle().Foreground(colorSuccess),
		err:     r.NewStyle().Foreground(colorError),
		warn:    r.NewStyle().Foreground(colorWarn),
		muted:   r.NewStyle().Foreground(colorMuted),
		command: r.NewStyle().Bold(true).Foreground(colorCommand),
	}
}

func (p *Printer) line(s lipgloss.Style, text string) {
	_, _ = fmt.Fprintln(p.w, s.Render(text))
}

// Title prints a section heading such as "- LIST -".
func (p *Printer) Title(text string) { p.line(p.title, text) }

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.success, fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, fmt.Sprintf(format, args...))
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.warn, fmt.Sprintf(format, args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.muted, fmt.Sprintf(format, args...))
}

// Printf prints unstyled text with no trailing newline added.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

// Running announces the command line about to be executed.
func (p *Printer) Running(commandLine string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.muted.Render("Running:"), p.command.Render(commandLine))
}

// Command prints a command line on its own, highlighted.
func (p *Printer) Command(commandLine string) { p.line(p.command, commandLine) }

// Entry prints one "name: command" listing line.
func (p *Printer) Entry(name, commandLine string) {
	_, _ = fmt.Fprintf(p.w, "%s: %s\n", p.command.Render(name), commandLine)
}
