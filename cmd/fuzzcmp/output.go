package main

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/core/domain"
	"github.com/charmbracelet/lipgloss"
)

type compareResult struct {
	Algorithm      string `json:"algorithm"`
	Preprocessor   string `json:"preprocessor"`
	S1             string `json:"s1"`
	S2             string `json:"s2"`
	Score          int    `json:"score"`
	HigherIsBetter bool   `json:"higher_is_better"`
}

type extractResult struct {
	Algorithm      string         `json:"algorithm"`
	Preprocessor   string         `json:"preprocessor"`
	Query          string         `json:"query"`
	HigherIsBetter bool           `json:"higher_is_better"`
	Matches        []domain.Match `json:"matches"`
}

type listResult struct {
	Scorers       []string `json:"scorers"`
	Preprocessors []string `json:"preprocessors"`
	Languages     []string `json:"languages"`
}

// Theme defines the color scheme for console output
type Theme struct {
	Score   lipgloss.Style
	Label   lipgloss.Style
	Choice  lipgloss.Style
	Heading lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultTheme is the default color scheme
var DefaultTheme = Theme{
	Score:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Choice:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var theme = DefaultTheme

func direction(higherIsBetter bool) string {
	if higherIsBetter {
		return "higher is better"
	}
	return "lower is better"
}

func renderCompare(r compareResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("algorithm:"), r.Algorithm)
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("preprocessor:"), r.Preprocessor)
	fmt.Fprintf(&b, "%s %s %s",
		theme.Label.Render("score:"),
		theme.Score.Render(fmt.Sprintf("%d", r.Score)),
		theme.Dim.Render("("+direction(r.HigherIsBetter)+")"))
	return b.String()
}

func renderExtract(r extractResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q %s\n",
		theme.Heading.Render("Matches for"),
		r.Query,
		theme.Dim.Render(fmt.Sprintf("[%s, %s, %s]", r.Algorithm, r.Preprocessor, direction(r.HigherIsBetter))))
	if len(r.Matches) == 0 {
		b.WriteString(theme.Dim.Render("no matches"))
		return b.String()
	}
	for i, m := range r.Matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s",
			theme.Score.Render(fmt.Sprintf("%4d", m.Score)),
			theme.Choice.Render(m.Choice),
			theme.Dim.Render(fmt.Sprintf("#%d", m.Index)))
	}
	return b.String()
}

func renderList(r listResult) string {
	sections := []struct {
		title string
		items []string
	}{
		{"Scorers", r.Scorers},
		{"Preprocessors", r.Preprocessors},
		{"Stemming languages", r.Languages},
	}
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Heading.Render(s.title))
		for _, item := range s.items {
			b.WriteString("\n  ")
			b.WriteString(item)
		}
	}
	return b.String()
}
