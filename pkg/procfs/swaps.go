package procfs

import (
	"strconv"
	"strings"

	"github.com/multiplealiases/zfree/pkg/quantity"
	"github.com/pkg/errors"
)

// ParseDiskSwap extracts the disk-backed swap device from captured
// /proc/swaps text. Fields come back in display order (total, used, free),
// all in KiB. The boolean is false when no disk swap is active, which is
// not an error. More than one disk swap device is unsupported.
func ParseDiskSwap(swaps string) (quantity.Record, bool, error) {
	var diskRow string
	var found bool
	for _, row := range swapRows(swaps) {
		if strings.Contains(strings.Fields(row)[0], zramMarker) {
			continue
		}
		if found {
			return nil, false, errors.New("having multiple disk swap devices is unsupported")
		}
		diskRow = row
		found = true
	}
	if !found {
		return nil, false, nil
	}

	cols := strings.Fields(diskRow)
	if len(cols) < 4 {
		return nil, false, errors.New("/proc/swaps not in expected format")
	}
	total, err := strconv.ParseInt(cols[2], 10, 64)
	if err != nil {
		return nil, false, errors.Wrap(err, "/proc/swaps not in expected format")
	}
	used, err := strconv.ParseInt(cols[3], 10, 64)
	if err != nil {
		return nil, false, errors.Wrap(err, "/proc/swaps not in expected format")
	}
	free := total - used

	return quantity.Record{
		{Name: "total", Quantity: quantity.New(float64(total), quantity.KiB)},
		{Name: "used", Quantity: quantity.New(float64(used), quantity.KiB)},
		{Name: "free", Quantity: quantity.New(float64(free), quantity.KiB)},
	}, true, nil
}
