// Package report renders validation and provisioning results for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flagcheck/internal/provision"
	"flagcheck/internal/validate"
)

type Printer struct {
	out io.Writer

	heading lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	item    lipgloss.Style
}

// NewPrinter styles output for out. Styles degrade to plain text when out is
// not a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		heading: r.NewStyle().Bold(true),
		good:    r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("1")),
		item:    r.NewStyle().Faint(true),
	}
}

func (p *Printer) Heading(title string) {
	fmt.Fprintf(p.out, "\n%s\n", p.heading.Render("=== "+title+" ==="))
}

func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.bad.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Tags(tags []string) {
	fmt.Fprintf(p.out, "Found %d country tags: %s\n", len(tags), strings.Join(tags, ", "))
}

func (p *Printer) Validation(r *validate.Report) {
	if r.Complete() {
		fmt.Fprintln(p.out, p.good.Render("All required flag files are present!"))
		return
	}

	fmt.Fprintln(p.out, p.bad.Render("The following flag files are missing:"))
	p.list(r.Missing)
	fmt.Fprintln(p.out, "\nPlease review the missing files and add them to the folder.")
}

func (p *Printer) Provision(r *provision.Result) {
	for _, outcome := range r.Failed() {
		p.Error("Error creating %s: %v", outcome.Name, outcome.Err)
	}

	created := r.Created()
	if len(created) == 0 {
		return
	}
	fmt.Fprintln(p.out, "\n"+p.good.Render("Created the following flag files:"))
	p.list(created)
}

func (p *Printer) list(names []string) {
	for _, name := range names {
		fmt.Fprintln(p.out, p.item.Render("- "+name))
	}
}
