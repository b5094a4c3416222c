package procfs

import (
	"testing"

	"github.com/multiplealiases/zfree/pkg/quantity"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func recordValues(t *testing.T, r quantity.Record) map[string]float64 {
	t.Helper()
	out := map[string]float64{}
	for _, f := range r {
		assert.Assert(t, !f.Quantity.Absent(), "field %s is absent", f.Name)
		out[f.Name] = *f.Quantity.Value
	}
	return out
}

func recordNames(r quantity.Record) []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Name)
	}
	return names
}

func TestParseMeminfo(t *testing.T) {
	const input = `MemTotal:       8000000 kB
MemFree:        2000000 kB
MemAvailable:   4000000 kB
Buffers:         100000 kB
Cached:          900000 kB
SwapCached:           0 kB
HugePages_Total:      0
Malformed:
AlsoMalformed:      X kB`

	rec, err := ParseMeminfo(input)
	assert.NilError(t, err)

	assert.Check(t, is.DeepEqual(recordNames(rec), []string{"total", "used", "avail", "cache", "free"}))
	assert.Check(t, is.DeepEqual(recordValues(t, rec), map[string]float64{
		"total": 8000000,
		"used":  4000000,
		"avail": 4000000,
		"cache": 1000000,
		"free":  2000000,
	}))
	for _, f := range rec {
		assert.Check(t, is.Equal(f.Quantity.Unit, quantity.KiB), "field %s", f.Name)
	}
}

func TestParseMeminfoAncientKernel(t *testing.T) {
	const input = `MemTotal:       8000000 kB
MemFree:        2000000 kB
Buffers:         100000 kB
Cached:          900000 kB`

	_, err := ParseMeminfo(input)
	assert.ErrorContains(t, err, "how old is this kernel")
}

func TestParseMeminfoMissingRequiredKey(t *testing.T) {
	const input = `MemFree:        2000000 kB
MemAvailable:   4000000 kB
Buffers:         100000 kB
Cached:          900000 kB`

	_, err := ParseMeminfo(input)
	assert.ErrorContains(t, err, "MemTotal absent from /proc/meminfo")
}
