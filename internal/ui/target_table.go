package ui

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/temirov/cmdkit/internal/presets"
)

const (
	targetTableHeadingTemplateConstant = "%s %s\n"
	targetTableCountTemplateConstant   = "(%d targets)"
	targetColumnHeaderConstant         = "Target"
	architectureColumnHeaderConstant   = "Architecture"
	platformColumnHeaderConstant       = "Platform"
	knownColumnHeaderConstant          = "Catalogued"
	knownTargetMarkerConstant          = "yes"
	unknownTargetMarkerConstant        = "no"
)

// TargetTableRenderer prints rustc target triples as a table.
type TargetTableRenderer struct {
	writer io.Writer
}

// NewTargetTableRenderer constructs a renderer writing to the provided writer.
func NewTargetTableRenderer(writer io.Writer) *TargetTableRenderer {
	if writer == nil {
		writer = io.Discard
	}
	return &TargetTableRenderer{writer: writer}
}

// Render writes a heading followed by one row per target.
func (renderer *TargetTableRenderer) Render(heading string, targets []presets.RustcTarget) error {
	if _, headingError := fmt.Fprintf(renderer.writer, targetTableHeadingTemplateConstant, HeadingColor(heading), DetailColor(fmt.Sprintf(targetTableCountTemplateConstant, len(targets)))); headingError != nil {
		return headingError
	}

	table := tablewriter.NewWriter(renderer.writer)
	table.SetHeader([]string{targetColumnHeaderConstant, architectureColumnHeaderConstant, platformColumnHeaderConstant, knownColumnHeaderConstant})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, target := range targets {
		knownMarker := unknownTargetMarkerConstant
		if target.IsKnown() {
			knownMarker = knownTargetMarkerConstant
		}
		table.Append([]string{target.String(), ArchitectureColor(target.Architecture()), target.Platform(), knownMarker})
	}
	table.Render()
	return nil
}
