// Package procfs captures and parses the Linux pseudo-files a single run
// reports on: /proc/meminfo, /proc/swaps, /proc/pressure/memory, and the
// per-device zram mm_stat files under /sys/class/block.
//
// The kernel regenerates these files on every open, so a Snapshot captures
// all of them as whole strings before anything is parsed; the parsers only
// ever see captured text.
package procfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	meminfoPath  = "/proc/meminfo"
	swapsPath    = "/proc/swaps"
	pressurePath = "/proc/pressure/memory"
)

// sysfsBlockDir is where per-device mm_stat files live. It is a variable so
// tests can point discovery at a scratch directory.
var sysfsBlockDir = "/sys/class/block"

// zramMarker identifies zram devices by their path in the swap table.
const zramMarker = "zram"

// Snapshot holds the captured contents of the pseudo-files a run reads.
// Swaps and Pressure are optional sources: swap may not be active, and
// kernels older than 4.20 (or built without PSI) have no pressure files.
type Snapshot struct {
	Meminfo  string
	Swaps    string
	Pressure string

	HasSwaps    bool
	HasPressure bool
}

// Gather captures every read-once source in one pass. /proc/meminfo must be
// readable; the optional sources are recorded as absent when they cannot be
// opened.
func Gather() (Snapshot, error) {
	s := Snapshot{}

	meminfo, ok := readOptional(meminfoPath)
	if !ok {
		return Snapshot{}, errors.Errorf("how did you get this far without a readable %s?", meminfoPath)
	}
	s.Meminfo = meminfo

	s.Swaps, s.HasSwaps = readOptional(swapsPath)
	s.Pressure, s.HasPressure = readOptional(pressurePath)
	return s, nil
}

// readOptional reads a whole pseudo-file into a trimmed string. A file that
// cannot be opened is an expected condition, not an error; the caller skips
// whatever section depended on it.
func readOptional(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Debugf("optional source %s not captured", path)
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// GatherZramMMStat scans the captured swap table for a zram device and
// reads its mm_stat. No zram device is a normal condition and returns
// false. A device that the swap table names but whose mm_stat cannot be
// read is an internal inconsistency and fails the run.
func GatherZramMMStat(swaps string) (string, bool, error) {
	for _, row := range swapRows(swaps) {
		dev := strings.Fields(row)[0]
		if !strings.Contains(dev, zramMarker) {
			continue
		}
		path := filepath.Join(sysfsBlockDir, filepath.Base(dev), "mm_stat")
		b, err := os.ReadFile(path)
		if err != nil {
			return "", false, errors.Wrapf(err, "swap table names %s but its mm_stat is unreadable", dev)
		}
		return strings.TrimSpace(string(b)), true, nil
	}
	return "", false, nil
}

// swapRows returns the device rows of a captured swap table, with the
// column-heading line and blank lines dropped.
func swapRows(swaps string) []string {
	lines := strings.Split(swaps, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			rows = append(rows, l)
		}
	}
	return rows
}
