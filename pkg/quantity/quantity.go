// Package quantity converts byte quantities between the binary and decimal
// unit systems and autoranges them for display.
//
// A Quantity pairs a value with the unit it is expressed in. Values may be
// absent ("could not be determined") and stay absent through conversion
// instead of failing it, so the formatting layer can render them as such.
// Quantities with an empty Unit are dimensionless (ratios, percentages) and
// pass through conversion untouched.
package quantity

import (
	"math"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"
)

// Unit names the unit a Quantity is expressed in. The empty string is a
// valid Unit and marks a dimensionless quantity.
type Unit string

const (
	B   Unit = "B"
	KB  Unit = "KB"
	KiB Unit = "KiB"
	MB  Unit = "MB"
	MiB Unit = "MiB"
	GB  Unit = "GB"
	GiB Unit = "GiB"
	TB  Unit = "TB"
	TiB Unit = "TiB"

	// AutoBinary and AutoDecimal are virtual units: converting to one of
	// them selects a concrete unit from the respective ladder by the
	// magnitude of the value. They never label a parsed Quantity.
	AutoBinary  Unit = "autobinary"
	AutoDecimal Unit = "autodecimal"

	// Percent is display-only. Percentages are dimensionless and are never
	// converted; the suffix exists so the formatter can render them.
	Percent Unit = "%"
)

// multipliers relates every concrete unit to bytes. go-units carries the
// canonical constants for both unit systems.
var multipliers = map[Unit]float64{
	B:   1,
	KB:  units.KB,
	KiB: units.KiB,
	MB:  units.MB,
	MiB: units.MiB,
	GB:  units.GB,
	GiB: units.GiB,
	TB:  units.TB,
	TiB: units.TiB,
}

// Autoranging ladders, narrowest unit first.
var (
	binaryLadder  = []Unit{B, KiB, MiB, GiB, TiB}
	decimalLadder = []Unit{B, KB, MB, GB, TB}
)

// Quantity is a value expressed in a Unit. Value is nil when the quantity
// could not be determined; such quantities survive conversion and
// formatting rather than failing them.
type Quantity struct {
	Value *float64
	Unit  Unit
}

// New returns a Quantity holding v expressed in u.
func New(v float64, u Unit) Quantity {
	return Quantity{Value: &v, Unit: u}
}

// Absent reports whether the value could not be determined.
func (q Quantity) Absent() bool {
	return q.Value == nil
}

func multiplier(u Unit) (float64, error) {
	m, ok := multipliers[u]
	if !ok {
		return 0, errors.Errorf("unknown unit %q", u)
	}
	return m, nil
}

// Convert re-expresses q in the target unit.
//
// Absent values convert to the absent Quantity no matter the target, and
// dimensionless quantities are returned unchanged. Converting to a virtual
// auto unit autoranges instead. The source unit must be concrete: only the
// parsers produce Quantities, and they always label them with the unit the
// kernel reports.
func Convert(q Quantity, target Unit) (Quantity, error) {
	if q.Absent() {
		return Quantity{}, nil
	}
	if q.Unit == "" {
		return q, nil
	}
	if q.Unit == AutoBinary || q.Unit == AutoDecimal {
		return Quantity{}, errors.Errorf("cannot convert from %q (misplaced auto unit?)", q.Unit)
	}
	switch target {
	case AutoBinary:
		return autorange(q, binaryLadder)
	case AutoDecimal:
		return autorange(q, decimalLadder)
	}
	from, err := multiplier(q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	to, err := multiplier(target)
	if err != nil {
		return Quantity{}, err
	}
	return New(*q.Value*(from/to), target), nil
}

// autorange picks the unit of ladder that best fits q's magnitude. The tier
// is the base-1000 order of magnitude of the byte count whatever the ladder,
// so a value lands on the same tier no matter what unit it arrived in.
// Byte counts below one, zero included, belong to the bottom tier.
func autorange(q Quantity, ladder []Unit) (Quantity, error) {
	b, err := Convert(q, B)
	if err != nil {
		return Quantity{}, err
	}
	if b.Absent() {
		return Quantity{}, nil
	}
	tier := 0
	if *b.Value >= 1 {
		tier = int(math.Floor(math.Log(*b.Value) / math.Log(1000)))
	}
	if tier > len(ladder)-1 {
		tier = len(ladder) - 1
	}
	return Convert(q, ladder[tier])
}
