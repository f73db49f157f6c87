package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/verton/internal/evaluator"
	"github.com/specialistvlad/verton/internal/stage"
)

// writeReport prints the final plug values and element positions.
func writeReport(w io.Writer, frames int, readings []evaluator.Reading, elements []stage.Element) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "frames: %d\n\n", frames)
	fmt.Fprintln(tw, "VERTEX\tKIND\tHEADER\tPLUG\tVALUE")
	for _, r := range readings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\n", r.VertexID, r.Kind, r.Header, r.Plug, r.Value)
	}

	if len(elements) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ELEMENT\tTEXT\tX\tY")
		for _, el := range elements {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\n", el.ID, el.Text, el.X, el.Y)
		}
	}
	return tw.Flush()
}
