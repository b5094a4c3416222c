package procfs

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestParsePressure(t *testing.T) {
	const input = `some avg10=0.00 avg60=1.50 avg300=2.25 total=123456
full avg10=0.10 avg60=0.20 avg300=0.30 total=65432`

	p, err := ParsePressure(input)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(p.Some, [3]float64{0, 1.5, 2.25}))
	assert.Check(t, is.Equal(p.Full, [3]float64{0.1, 0.2, 0.3}))
}

func TestParsePressureSingleLine(t *testing.T) {
	_, err := ParsePressure("some avg10=0.00 avg60=0.00 avg300=0.00 total=0")
	assert.ErrorContains(t, err, "/proc/pressure/memory not in expected format")
}

func TestParsePressureMalformedToken(t *testing.T) {
	const input = `some avg10=0.00 avg60 avg300=0.00 total=0
full avg10=0.00 avg60=0.00 avg300=0.00 total=0`

	_, err := ParsePressure(input)
	assert.ErrorContains(t, err, "not in expected format")
}
