package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Palette shared by all commands.
var (
	colourAccent  = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourError   = lipgloss.Color("#F38BA8")
	colourBorder  = lipgloss.Color("#45475A")
)

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderTable renders rows under headers. Colours are only applied on a terminal.
func renderTable(cmd *cobra.Command, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	if isTerminal(cmd) {
		header := lipgloss.NewStyle().Bold(true).Foreground(colourAccent).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(colourBorder)).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})
	} else {
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.StyleFunc(func(int, int) lipgloss.Style { return cell })
	}
	return t.Render()
}

// title renders a section heading.
func title(cmd *cobra.Command, s string) string {
	if !isTerminal(cmd) {
		return s
	}
	return lipgloss.NewStyle().Bold(true).Foreground(colourAccent).Render(s)
}

// status renders a yes/no verdict.
func status(cmd *cobra.Command, ok bool, yes, no string) string {
	label, colour := no, colourError
	if ok {
		label, colour = yes, colourSuccess
	}
	if !isTerminal(cmd) {
		return label
	}
	return lipgloss.NewStyle().Foreground(colour).Render(label)
}

// muted renders secondary text.
func muted(cmd *cobra.Command, s string) string {
	if !isTerminal(cmd) {
		return s
	}
	return lipgloss.NewStyle().Foreground(colourMuted).Render(s)
}

// printJSON writes v as indented JSON to standard output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
