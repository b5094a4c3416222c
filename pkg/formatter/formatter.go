// Package formatter renders converted quantity records into the aligned
// text blocks the report is made of.
package formatter

import (
	"fmt"
	"strings"

	"github.com/multiplealiases/zfree/pkg/quantity"
)

// absentCell is what an undeterminable value renders as, the same
// placeholder zramctl and lsblk print for cells they cannot fill in.
const absentCell = "-"

// FormatValueUnit renders a quantity as the value to the given number of
// decimal places immediately followed by its unit suffix, e.g. "512.0MiB".
// Dimensionless quantities render bare; absent ones render as a placeholder.
func FormatValueUnit(q quantity.Quantity, decimals int) string {
	if q.Absent() {
		return absentCell
	}
	return fmt.Sprintf("%.*f%s", decimals, *q.Value, q.Unit)
}

// FormatTable lays rows out column-major: every input row is a header label
// followed by its values, and printed line i holds field i of every row,
// each right-justified to width. So a slice of rows
//
//	[header, a, b]
//	[header, a, b]
//
// prints as a line of headers, a line of a values, and a line of b values.
// Ragged input truncates to the shortest row; callers are expected to hand
// in rectangular tables. The first line carries no leading newline.
func FormatTable(rows [][]string, width int) string {
	if len(rows) == 0 {
		return ""
	}
	depth := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) < depth {
			depth = len(r)
		}
	}

	var b strings.Builder
	for i := 0; i < depth; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, row := range rows {
			fmt.Fprintf(&b, "%*s", width, row[i])
		}
	}
	return b.String()
}
