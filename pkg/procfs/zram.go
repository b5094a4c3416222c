package procfs

import (
	"strconv"
	"strings"

	"github.com/multiplealiases/zfree/pkg/quantity"
	"github.com/pkg/errors"
)

// ParseZramSwap extracts compressed data size, total pool size, and the
// compression ratio from a captured mm_stat line. data and total are in
// bytes; the ratio is dimensionless and absent when the pool is empty
// (total zero).
//
// mm_stat field 0 and field 2 are what zramctl reports as COMPDATA and
// COMPTOTAL.
func ParseZramSwap(mmstat string) (quantity.Record, error) {
	cols := strings.Fields(mmstat)
	if len(cols) < 3 {
		return nil, errors.New("zram mm_stat not in expected format")
	}
	data, err := strconv.ParseFloat(cols[0], 64)
	if err != nil {
		return nil, errors.Wrap(err, "zram mm_stat not in expected format")
	}
	total, err := strconv.ParseFloat(cols[2], 64)
	if err != nil {
		return nil, errors.Wrap(err, "zram mm_stat not in expected format")
	}

	ratio := quantity.Quantity{}
	if total != 0 {
		ratio = quantity.New(data/total, "")
	}

	return quantity.Record{
		{Name: "data", Quantity: quantity.New(data, quantity.B)},
		{Name: "total", Quantity: quantity.New(total, quantity.B)},
		{Name: "ratio", Quantity: ratio},
	}, nil
}
