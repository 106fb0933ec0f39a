// Package console implements the terminal side of the interactive variant.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ordinalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ShowRepositories(names []string) {
	fmt.Fprintln(p.out, titleStyle.Render("Available Repositories:"))
	for i, name := range names {
		fmt.Fprintf(p.out, "  %s %s\n", ordinalStyle.Render(fmt.Sprintf("[%d]", i+1)), name)
	}
}

func (p *Prompter) ShowPreview(repoName, preview string) {
	fmt.Fprintln(p.out, titleStyle.Render(fmt.Sprintf("Generated README.md Preview (%s)", repoName)))
	fmt.Fprintln(p.out, previewStyle.Render(preview))
}

// Ask prints question and returns the next input line without its line ending.
// A final line without newline is still returned; EOF before any input is an error.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
