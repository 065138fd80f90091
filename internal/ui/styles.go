/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package ui provides terminal styling for stack status output, built on
// Fang's colour scheme so command output matches the help and error pages.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
)

// StyleSet contains the styles used for status and event rendering
type StyleSet struct {
	Title  lipgloss.Style
	Key    lipgloss.Style
	Value  lipgloss.Style
	Subtle lipgloss.Style

	// Status classes
	Success    lipgloss.Style
	InProgress lipgloss.Style
	Failed     lipgloss.Style

	useColour bool
}

// NewStyleSet creates a style set. With colour enabled it detects the
// terminal background and maps Fang's scheme onto status classes:
// Flag for healthy, Command for in-progress, ErrorDetails for failures.
func NewStyleSet(useColour bool) *StyleSet {
	s := &StyleSet{useColour: useColour}

	if useColour {
		hasDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
		lightDark := lipgloss.LightDark(hasDark)
		scheme := fang.DefaultColorScheme(lightDark)

		s.Title = lipgloss.NewStyle().Bold(true).Foreground(scheme.Title)
		s.Key = lipgloss.NewStyle().Foreground(scheme.Argument)
		s.Value = lipgloss.NewStyle().Foreground(scheme.Base)
		s.Subtle = lipgloss.NewStyle().Foreground(scheme.Comment)

		s.Success = lipgloss.NewStyle().Foreground(scheme.Flag).Bold(true)
		s.InProgress = lipgloss.NewStyle().Foreground(scheme.Command).Bold(true)
		s.Failed = lipgloss.NewStyle().Foreground(scheme.ErrorDetails).Bold(true)
	} else {
		plainStyle := lipgloss.NewStyle()

		s.Title = plainStyle.Bold(true)
		s.Key = plainStyle
		s.Value = plainStyle
		s.Subtle = plainStyle
		s.Success = plainStyle.Bold(true)
		s.InProgress = plainStyle.Bold(true)
		s.Failed = plainStyle.Bold(true)
	}

	return s
}

// RenderStatus renders a stack or resource status string with the style
// matching its class
func (s *StyleSet) RenderStatus(status string) string {
	switch {
	case strings.Contains(status, "ROLLBACK"), strings.Contains(status, "FAILED"):
		return s.Failed.Render(status)
	case strings.HasSuffix(status, "_IN_PROGRESS"):
		return s.InProgress.Render(status)
	case strings.HasSuffix(status, "_COMPLETE"):
		return s.Success.Render(status)
	default:
		return s.Value.Render(status)
	}
}

// ShouldUseColour determines whether styled output is appropriate.
// Returns false if:
// - NO_COLOR environment variable is set
// - STACKDRILL_PLAIN environment variable is set
// - TERM is "dumb" or empty
// - stdout is not a TTY
func ShouldUseColour() bool {
	if os.Getenv("STACKDRILL_PLAIN") != "" {
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
