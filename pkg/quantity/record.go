package quantity

import "github.com/pkg/errors"

// Field is a single named entry of a Record.
type Field struct {
	Name     string
	Quantity Quantity
}

// Record is an ordered collection of named quantities. The order is display
// order, not an accident of construction: transformations must hand fields
// back in the order they received them.
type Record []Field

// Get returns the quantity stored under name.
func (r Record) Get(name string) (Quantity, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Quantity, true
		}
	}
	return Quantity{}, false
}

// Convert re-expresses every field of r in the target unit and returns the
// result as a new Record with the same names in the same order.
// Dimensionless fields pass through unchanged.
func (r Record) Convert(target Unit) (Record, error) {
	out := make(Record, 0, len(r))
	for _, f := range r {
		q, err := Convert(f.Quantity, target)
		if err != nil {
			return nil, errors.Wrapf(err, "converting %s", f.Name)
		}
		out = append(out, Field{Name: f.Name, Quantity: q})
	}
	return out, nil
}
