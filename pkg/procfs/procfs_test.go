package procfs

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// fakeSysfs redirects mm_stat discovery into a scratch directory for the
// duration of a test.
func fakeSysfs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := sysfsBlockDir
	sysfsBlockDir = dir
	t.Cleanup(func() { sysfsBlockDir = prev })
	return dir
}

func TestGatherZramMMStat(t *testing.T) {
	dir := fakeSysfs(t)
	assert.NilError(t, os.MkdirAll(filepath.Join(dir, "zram0"), 0o755))
	assert.NilError(t, os.WriteFile(
		filepath.Join(dir, "zram0", "mm_stat"),
		[]byte("1048576 0 2097152 0 0 0 0 0 0\n"), 0o644))

	swaps := swapsHeader + `
/dev/zram0                              partition       4194300         524288          100`

	mmstat, ok, err := GatherZramMMStat(swaps)
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(mmstat, "1048576 0 2097152 0 0 0 0 0 0"))
}

func TestGatherZramMMStatNoZram(t *testing.T) {
	fakeSysfs(t)
	swaps := swapsHeader + `
/dev/sda2                               partition       8388604         1048576         -2`

	_, ok, err := GatherZramMMStat(swaps)
	assert.NilError(t, err)
	assert.Check(t, !ok)
}

// A device the swap table names must have a readable mm_stat; anything else
// means the view of the system is inconsistent and the run cannot continue.
func TestGatherZramMMStatUnreadable(t *testing.T) {
	fakeSysfs(t)
	swaps := swapsHeader + `
/dev/zram0                              partition       4194300         524288          100`

	_, _, err := GatherZramMMStat(swaps)
	assert.ErrorContains(t, err, "mm_stat is unreadable")
}
