package libdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Format renders line edits in unified style: kept lines are prefixed by
// two spaces, inserted ones by "+ " and deleted ones by "- ". With colors,
// insertions are green and deletions red.
func Format(edits []Edit, colors bool) string {
	add, del := fmt.Sprint, fmt.Sprint
	if colors {
		add = color.New(color.FgGreen).SprintFunc()
		del = color.New(color.FgRed).SprintFunc()
	}
	var b strings.Builder
	for _, e := range edits {
		prefix, paint := "  ", fmt.Sprint
		switch e.Op {
		case Insert:
			prefix, paint = "+ ", add
		case Delete:
			prefix, paint = "- ", del
		}
		for _, ln := range strings.SplitAfter(e.Text, "\n") {
			if ln == "" {
				continue
			}
			b.WriteString(paint(prefix + ln))
		}
	}
	return b.String()
}
