package plot

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func TestNewValidatesMapping(t *testing.T) {
	ds := gapdata(t)

	p, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy")})
	test.T(t, err, nil)
	test.T(t, p.Aes()[X].Name(), "income")

	_, err = New(ds, Mapping{X: Col("gdp")})
	var merr InvalidMappingError
	test.That(t, errors.As(err, &merr))
	test.T(t, merr.Column, "gdp")
}

func TestLayerRequiredAesthetics(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy")})
	test.T(t, err, nil)

	// Point needs only x and y, which the default mapping provides.
	points, err := base.Layer(GeomPoint, nil, Params{})
	test.T(t, err, nil)
	test.T(t, points.Layers(), 1)

	// Text also needs a label, which neither the default nor the local
	// mapping provides here.
	_, err = points.Layer(GeomText, nil, Params{})
	var aerr MissingRequiredAestheticError
	test.That(t, errors.As(err, &aerr))
	test.T(t, aerr.Geom, GeomText)
	test.T(t, aerr.Channel, Label)

	// A local label mapping satisfies it.
	labelled, err := points.Layer(GeomText, Mapping{Label: Col("country")}, Params{})
	test.T(t, err, nil)
	test.T(t, labelled.Layers(), 2)
}

func TestLayerRugEitherPosition(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, nil)
	test.T(t, err, nil)

	_, err = base.Layer(GeomRug, nil, Params{})
	var aerr MissingRequiredAestheticError
	test.That(t, errors.As(err, &aerr))

	_, err = base.Layer(GeomRug, Mapping{X: Col("income")}, Params{})
	test.T(t, err, nil)
	_, err = base.Layer(GeomRug, Mapping{Y: Col("income")}, Params{})
	test.T(t, err, nil)
}

func TestLayerValidatesLocalMapping(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy")})
	test.T(t, err, nil)

	_, err = base.Layer(GeomPoint, Mapping{Color: Col("continent")}, Params{})
	var merr InvalidMappingError
	test.That(t, errors.As(err, &merr))
	test.T(t, merr.Column, "continent")
	test.T(t, merr.Channel, Color)
}

func TestImmutableBranching(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy")})
	test.T(t, err, nil)

	// Two divergent continuations from the same base.
	left, err := base.Layer(GeomPoint, nil, Params{})
	test.T(t, err, nil)
	right, err := base.Layer(GeomLine, Mapping{Color: Col("region")}, Params{})
	test.T(t, err, nil)
	right, err = right.Scale(ScaleXLog10())
	test.T(t, err, nil)
	right = right.Labels(Labels{Title: "right"})

	test.T(t, base.Layers(), 0)
	test.T(t, left.Layers(), 1)
	test.T(t, right.Layers(), 1)
	test.T(t, len(base.scales), 0)
	test.T(t, base.labels.Title, "")
	test.T(t, left.labels.Title, "")
	test.T(t, right.labels.Title, "right")
}

func TestScaleLastWins(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy")})
	test.T(t, err, nil)

	p, err := base.Scale(ScaleSizeRange(2.0, 20.0))
	test.T(t, err, nil)
	p, err = p.Scale(ScaleSizeRange(1.0, 10.0))
	test.T(t, err, nil)

	s, ok := p.scales[Size].(*SizeScale)
	test.That(t, ok)
	test.Float(t, s.Min, 1.0)
	test.Float(t, s.Max, 10.0)
	test.T(t, len(p.scales), 1)
}

func TestCoordLim(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy")})
	test.T(t, err, nil)

	xlim := Range{Min: 500.0, Max: 40000.0}
	p := base.CoordLim(&xlim, nil)
	xlim.Min = 123.0 // mutating the caller's range must not reach the specification
	test.That(t, base.xlim == nil && base.ylim == nil)
	test.Float(t, p.xlim.Min, 500.0)
	test.That(t, p.ylim == nil)

	st, err := p.train()
	test.T(t, err, nil)
	// Limits clip exactly, without the 5% padding of a free axis.
	test.Float(t, st.x.lo, 500.0)
	test.Float(t, st.x.hi, 40000.0)
	test.That(t, st.y.lo < 43.8 && 82.6 < st.y.hi)
}

func TestScaleDetachedFromCaller(t *testing.T) {
	ds := gapdata(t)
	p, err := New(ds, Mapping{X: Col("income"), Y: Col("life_expectancy"), Color: Col("region")})
	test.T(t, err, nil)

	s := ScaleXContinuous(ContinuousOpts{
		Limits: &Range{Min: 0.0, Max: 40000.0},
		Breaks: []Break{{At: 20000.0, Label: "twenty"}},
	})
	p, err = p.Scale(s)
	test.T(t, err, nil)

	cs := s.(*ContinuousScale)
	cs.Breaks[0].Label = "mutated"
	cs.Limits.Max = 1.0

	red := color.RGBA{255, 0, 0, 255}
	values := map[string]color.Color{"Asia": red}
	p, err = p.Scale(ScaleColorManual(values))
	test.T(t, err, nil)
	values["Asia"] = color.RGBA{0, 0, 255, 255}

	st, err := p.train()
	test.T(t, err, nil)
	test.Float(t, st.x.hi, 40000.0)
	test.T(t, st.x.breaks[0].Label, "twenty")
	test.T(t, st.colorMap["Asia"], color.Color(red))
}

func TestGuideUnknownChannel(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, nil)
	test.T(t, err, nil)

	_, err = base.Guide(Channel("banana"), false)
	var cerr UnknownChannelError
	test.That(t, errors.As(err, &cerr))

	p, err := base.Guide(Size, false)
	test.T(t, err, nil)
	test.That(t, !p.guideShown(Size))
	test.That(t, base.guideShown(Size))
}

func TestThemeAndLabelsMergeLastWins(t *testing.T) {
	ds := gapdata(t)
	base, err := New(ds, nil)
	test.T(t, err, nil)

	p := base.Theme(ThemeMinimal()).Theme(Theme{Grid: VisHide, BoldTitle: true})
	test.T(t, p.theme.Grid, VisHide)
	test.T(t, p.theme.BoldTitle, true)
	test.That(t, p.theme.GridColor != nil) // kept from the earlier theme

	p = p.Labels(Labels{Title: "a", X: "income"}).Labels(Labels{Title: "b"})
	test.T(t, p.labels.Title, "b")
	test.T(t, p.labels.X, "income")
}
