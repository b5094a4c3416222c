package procfs

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const swapsHeader = "Filename                                Type            Size            Used            Priority"

func TestParseDiskSwap(t *testing.T) {
	swaps := swapsHeader + `
/dev/sda2                               partition       8388604         1048576         -2`

	rec, ok, err := ParseDiskSwap(swaps)
	assert.NilError(t, err)
	assert.Assert(t, ok)

	assert.Check(t, is.DeepEqual(recordNames(rec), []string{"total", "used", "free"}))
	assert.Check(t, is.DeepEqual(recordValues(t, rec), map[string]float64{
		"total": 8388604,
		"used":  1048576,
		"free":  7340028,
	}))
}

// A swap table holding only a zram device has no disk swap; that is a
// normal condition, distinct from a parse failure.
func TestParseDiskSwapZramOnly(t *testing.T) {
	swaps := swapsHeader + `
/dev/zram0                              partition       4194300         524288          100`

	rec, ok, err := ParseDiskSwap(swaps)
	assert.NilError(t, err)
	assert.Check(t, !ok)
	assert.Check(t, is.Nil(rec))
}

func TestParseDiskSwapNoDevices(t *testing.T) {
	_, ok, err := ParseDiskSwap(swapsHeader)
	assert.NilError(t, err)
	assert.Check(t, !ok)
}

func TestParseDiskSwapMultipleDevices(t *testing.T) {
	swaps := swapsHeader + `
/dev/sda2                               partition       8388604         1048576         -2
/swapfile                               file            2097148         0               -3`

	_, _, err := ParseDiskSwap(swaps)
	assert.ErrorContains(t, err, "multiple disk swap devices")
}

func TestParseDiskSwapShortRow(t *testing.T) {
	swaps := swapsHeader + `
/dev/sda2 partition`

	_, _, err := ParseDiskSwap(swaps)
	assert.ErrorContains(t, err, "/proc/swaps not in expected format")
}
