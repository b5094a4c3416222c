package formatter

import (
	"fmt"
	"strings"

	"github.com/multiplealiases/zfree/pkg/procfs"
	"github.com/multiplealiases/zfree/pkg/quantity"
	"github.com/pkg/errors"
)

// MemoryBlock renders the memory record, side by side with the disk swap
// record when one is given. The memory record supplies the row order; swap
// cells stay blank for fields the swap record does not carry (avail, cache).
func MemoryBlock(mem, swap quantity.Record, width int) string {
	var b strings.Builder
	if swap != nil {
		b.WriteString("Memory/swap\n")
	} else {
		b.WriteString("Memory\n")
	}

	rows := make([][]string, 0, len(mem))
	for _, f := range mem {
		row := []string{f.Name, FormatValueUnit(f.Quantity, 1)}
		if swap != nil {
			cell := ""
			if q, ok := swap.Get(f.Name); ok {
				cell = FormatValueUnit(q, 1)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	b.WriteString(FormatTable(rows, width))
	return b.String()
}

// ZramBlock renders the zram record plus the pool's uncompressed size as a
// percentage of total RAM. Both totals must be resolvable in bytes by this
// point; an absent one means an earlier stage let an inconsistency through.
func ZramBlock(zram, mem quantity.Record, width int) (string, error) {
	memTotal, _ := mem.Get("total")
	zramTotal, _ := zram.Get("total")

	memBytes, err := quantity.Convert(memTotal, quantity.B)
	if err != nil {
		return "", err
	}
	zramBytes, err := quantity.Convert(zramTotal, quantity.B)
	if err != nil {
		return "", err
	}
	if memBytes.Absent() || zramBytes.Absent() {
		return "", errors.New("total RAM or zram size could not be determined")
	}
	compPercent := quantity.New(*zramBytes.Value / *memBytes.Value * 100, quantity.Percent)

	data, _ := zram.Get("data")
	ratio, _ := zram.Get("ratio")
	rows := [][]string{
		{"data", FormatValueUnit(data, 1)},
		{"total", FormatValueUnit(zramTotal, 1)},
		{"ratio", FormatValueUnit(ratio, 2)},
		{"comp%", FormatValueUnit(compPercent, 2)},
	}
	return "zram\n" + FormatTable(rows, width), nil
}

// PressureLine renders the PSI averages as a single line, e.g.
//
//	psi some/full: 0.00, 1.50, 2.25 / 0.10, 0.20, 0.30
func PressureLine(p procfs.Pressure) string {
	triple := func(w [3]float64) string {
		return fmt.Sprintf("%.2f, %.2f, %.2f", w[0], w[1], w[2])
	}
	return "psi some/full: " + triple(p.Some) + " / " + triple(p.Full)
}
