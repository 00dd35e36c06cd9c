package render

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#0969DA")
	accentColor  = lipgloss.Color("#2DA44E")
	errorColor   = lipgloss.Color("#CF222E")
	dimColor     = lipgloss.Color("#6E7681")
	linkColor    = lipgloss.Color("#58A6FF")
	titleColor   = lipgloss.Color("#39D353")
	dateColor    = lipgloss.Color("#A371F7")
	sourceColor  = lipgloss.Color("#FFA657")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true)

	TextStyle = lipgloss.NewStyle()

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	DateStyle = lipgloss.NewStyle().
			Foreground(dateColor)

	SourceStyle = lipgloss.NewStyle().
			Foreground(sourceColor)

	LinkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	ControlStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Strikethrough(true)
)
