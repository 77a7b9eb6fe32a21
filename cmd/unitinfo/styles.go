package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#5F87FF")
	mutedColor   = lipgloss.Color("#888888")
	errorColor   = lipgloss.Color("#D70000")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)

func printError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+msg)
}
