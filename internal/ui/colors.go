package ui

import "github.com/fatih/color"

var (
	// HeadingColor highlights section headings.
	HeadingColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	// DetailColor dims secondary information such as counts and sources.
	DetailColor = color.New(color.FgHiBlack).SprintFunc()
	// ArchitectureColor highlights the architecture column of target listings.
	ArchitectureColor = color.New(color.FgCyan).SprintFunc()
)

// DisableColors turns off ANSI coloring for every printer in the process.
func DisableColors() {
	color.NoColor = true
}
