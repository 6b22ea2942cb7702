package plot

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestTermCol(t *testing.T) {
	ds := gapdata(t)
	term := Col("income")
	test.T(t, term.Name(), "income")
	test.T(t, term.validate(X, ds), nil)
	test.Float(t, term.floats(ds)[0], 975.0)
	test.T(t, term.strings(ds)[3], "32170")
}

func TestTermLog10Lazy(t *testing.T) {
	ds := gapdata(t)
	term := Log10("income")
	test.T(t, term.Name(), "log10(income)")
	test.T(t, term.validate(X, ds), nil)
	test.Float(t, term.floats(ds)[0], math.Log10(975.0))

	// The expression is evaluated against whatever snapshot it is handed,
	// not against values captured when the mapping was declared.
	ds2, err := DatasetFromRecords([]string{"income"}, [][]string{{"100"}})
	test.T(t, err, nil)
	test.Float(t, term.floats(ds2)[0], 2.0)
}

func TestExprValidatesInputs(t *testing.T) {
	ds := gapdata(t)
	term := Expr("income per decade", func(r Record) float64 {
		return r.Float("income") / 10.0
	}, "income")
	test.T(t, term.validate(X, ds), nil)

	bad := Expr("nope", func(r Record) float64 { return r.Float("gdp") }, "gdp")
	err := bad.validate(X, ds)
	var merr InvalidMappingError
	test.That(t, errors.As(err, &merr))
	test.T(t, merr.Column, "gdp")
	test.T(t, merr.Channel, X)
}

func TestMappingOverlay(t *testing.T) {
	def := Mapping{X: Col("income"), Y: Col("life_expectancy")}
	local := Mapping{X: Log10("income"), Size: Col("population")}

	eff := def.overlay(local)
	test.T(t, eff[X].Name(), "log10(income)")
	test.T(t, eff[Y].Name(), "life_expectancy")
	test.T(t, eff[Size].Name(), "population")

	// Neither input mapping is modified by the overlay.
	test.T(t, def[X].Name(), "income")
	_, ok := def[Size]
	test.That(t, !ok)
}

func TestMappingValidate(t *testing.T) {
	ds := gapdata(t)
	test.T(t, Mapping{X: Col("income")}.validate(ds), nil)

	err := Mapping{Channel("banana"): Col("income")}.validate(ds)
	var cerr UnknownChannelError
	test.That(t, errors.As(err, &cerr))
	test.T(t, cerr.Channel, Channel("banana"))
}
