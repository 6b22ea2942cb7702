package plot

import (
	"math"
)

// Channel is a visually perceivable property of a geom that data can be
// mapped onto.
type Channel string

const (
	X        Channel = "x"
	Y        Channel = "y"
	Color    Channel = "color"
	Fill     Channel = "fill"
	Size     Channel = "size"
	Shape    Channel = "shape"
	Label    Channel = "label"
	LineType Channel = "linetype"
)

var channels = map[Channel]bool{
	X: true, Y: true, Color: true, Fill: true,
	Size: true, Shape: true, Label: true, LineType: true,
}

// Record is a single-row view of a dataset, passed to mapping expressions.
type Record struct {
	ds *Dataset
	i  int
}

// Float returns the numeric value of the named column in this record.
func (r Record) Float(name string) float64 {
	return r.ds.Float(name, r.i)
}

// String returns the value of the named column in this record as a string.
func (r Record) String(name string) string {
	return r.ds.String(name, r.i)
}

// Term is the right-hand side of an aesthetic mapping: either a plain column
// reference or a lazy expression over declared input columns. Expressions are
// evaluated per record at render time, so a specification re-rendered against
// an updated dataset snapshot picks up the new values.
type Term struct {
	column string
	inputs []string
	fn     func(Record) float64
	name   string
}

// Col maps a channel to the named dataset column.
func Col(name string) Term {
	return Term{column: name, name: name}
}

// Expr maps a channel to a derived numeric value computed per record. The
// input columns must be declared so that the mapping can be validated against
// the dataset; name is used for axis and legend titles.
func Expr(name string, fn func(Record) float64, inputs ...string) Term {
	return Term{inputs: inputs, fn: fn, name: name}
}

// Log10 maps a channel to the base-10 logarithm of the named column.
func Log10(name string) Term {
	return Expr("log10("+name+")", func(r Record) float64 {
		return math.Log10(r.Float(name))
	}, name)
}

func (t Term) isZero() bool {
	return t.column == "" && t.fn == nil
}

// Name returns the display name of the term, used for default axis and
// legend titles.
func (t Term) Name() string {
	return t.name
}

func (t Term) validate(c Channel, ds *Dataset) error {
	if t.column != "" && !ds.Has(t.column) {
		return InvalidMappingError{Channel: c, Column: t.column}
	}
	for _, input := range t.inputs {
		if !ds.Has(input) {
			return InvalidMappingError{Channel: c, Column: input}
		}
	}
	return nil
}

// numeric reports whether the term evaluates to numbers for ds.
func (t Term) numeric(ds *Dataset) bool {
	if t.fn != nil {
		return true
	}
	return ds.Numeric(t.column)
}

// floats evaluates the term for every record of ds.
func (t Term) floats(ds *Dataset) []float64 {
	vs := make([]float64, ds.Len())
	for i := range vs {
		if t.fn != nil {
			vs[i] = t.fn(Record{ds, i})
		} else {
			vs[i] = ds.Float(t.column, i)
		}
	}
	return vs
}

// strings evaluates the term for every record of ds as strings.
func (t Term) strings(ds *Dataset) []string {
	vs := make([]string, ds.Len())
	for i := range vs {
		if t.fn != nil {
			vs[i] = formatFloat(t.fn(Record{ds, i}))
		} else {
			vs[i] = ds.String(t.column, i)
		}
	}
	return vs
}

// Mapping maps aesthetic channels to terms. Constants are not mapping terms;
// uniform looks are set per layer with Params.
type Mapping map[Channel]Term

func (m Mapping) validate(ds *Dataset) error {
	for c, t := range m {
		if !channels[c] {
			return UnknownChannelError{Channel: c}
		}
		if err := t.validate(c, ds); err != nil {
			return err
		}
	}
	return nil
}

// overlay returns m with local entries replacing same-named entries. Neither
// input is modified.
func (m Mapping) overlay(local Mapping) Mapping {
	eff := make(Mapping, len(m)+len(local))
	for c, t := range m {
		eff[c] = t
	}
	for c, t := range local {
		eff[c] = t
	}
	return eff
}
