package procfs

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pressure holds the PSI stall percentages for memory at the 10, 60 and
// 300 second averaging windows. These are plain percentages, never subject
// to unit conversion.
type Pressure struct {
	Some [3]float64
	Full [3]float64
}

// ParsePressure extracts the "some" and "full" averages from captured
// /proc/pressure/memory text.
func ParsePressure(psi string) (Pressure, error) {
	lines := strings.Split(psi, "\n")
	if len(lines) < 2 {
		return Pressure{}, errors.New("/proc/pressure/memory not in expected format")
	}

	p := Pressure{}
	var err error
	if p.Some, err = parsePressureLine(lines[0]); err != nil {
		return Pressure{}, err
	}
	if p.Full, err = parsePressureLine(lines[1]); err != nil {
		return Pressure{}, err
	}
	return p, nil
}

// parsePressureLine pulls the three avg windows out of one line of the form
//
//	some avg10=0.00 avg60=0.00 avg300=0.00 total=0
func parsePressureLine(line string) ([3]float64, error) {
	var out [3]float64
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return out, errors.Errorf("/proc/pressure/memory not in expected format: short line %q", line)
	}
	for i, f := range fields[1:4] {
		parts := strings.SplitN(f, "=", 2)
		if len(parts) != 2 {
			return out, errors.Errorf("/proc/pressure/memory not in expected format: token %q", f)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return out, errors.Wrapf(err, "/proc/pressure/memory not in expected format: token %q", f)
		}
		out[i] = v
	}
	return out, nil
}
