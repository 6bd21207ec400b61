package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/irlink/internal/linker"
	"github.com/specialistvlad/irlink/internal/refs"
)

// writeReport prints the link summary, every sequence table and the
// hierarchy forest.
func writeReport(w io.Writer, r *linker.Result) error {
	fmt.Fprintf(w, "Linked %d symbols (%d collapsed, %d overridden).\n",
		r.Universe.Len(), r.Dedupe.Collapsed, r.Dedupe.Overridden)

	for _, t := range r.Sequences {
		fmt.Fprintf(w, "\n%s\n", t.Name)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, a := range t.Actions {
			if a.Condition != "" {
				fmt.Fprintf(tw, "  %d\t%s\t%s\n", a.Sequence, a.Name, a.Condition)
			} else {
				fmt.Fprintf(tw, "  %d\t%s\n", a.Sequence, a.Name)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if r.Forest.Len() == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nHierarchy\n")
	r.Forest.Walk(func(n *refs.Node, depth int) bool {
		fmt.Fprintf(w, "%*s%s\n", 2+2*depth, "", n.Key)
		return true
	})
	return nil
}
