package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#5FD787"})

	noSolutionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#B35900", Dark: "#FFAF5F"})

	pathStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5F5F87", Dark: "#AFAFD7"})

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"})
)

// summaryLine describes a result set in one line, e.g. "GLW: 3 words -> answers.txt".
func summaryLine(letters string, matched int, answerPath string) string {
	var count string
	switch matched {
	case 0:
		count = noSolutionStyle.Render("No Solution")
	case 1:
		count = countStyle.Render("1 word")
	default:
		count = countStyle.Render(strconv.Itoa(matched) + " words")
	}
	return letters + ": " + count + " -> " + pathStyle.Render(answerPath)
}
