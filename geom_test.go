package plot

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestGeomRequired(t *testing.T) {
	xy := Mapping{X: Col("a"), Y: Col("b")}
	for _, g := range []Geom{GeomPoint, GeomLine, GeomSmooth, GeomBar} {
		test.T(t, g.checkRequired(xy), nil)
		test.That(t, g.checkRequired(Mapping{X: Col("a")}) != nil, g.String())
		test.That(t, g.checkRequired(Mapping{Y: Col("b")}) != nil, g.String())
	}

	test.That(t, GeomText.checkRequired(xy) != nil)
	test.T(t, GeomText.checkRequired(xy.overlay(Mapping{Label: Col("c")})), nil)

	test.That(t, GeomRug.checkRequired(Mapping{}) != nil)
	test.T(t, GeomRug.checkRequired(Mapping{X: Col("a")}), nil)
	test.T(t, GeomRug.checkRequired(Mapping{Y: Col("b")}), nil)
}

func TestGeomString(t *testing.T) {
	test.T(t, GeomPoint.String(), "geom point")
	test.T(t, Geom(99).String(), "geom unknown")
}

func TestLineStyleDashes(t *testing.T) {
	test.T(t, len(Solid.dashes()), 0)
	test.T(t, len(Dashed.dashes()), 2)
	test.T(t, len(Dotted.dashes()), 2)
}

func TestLeastSquares(t *testing.T) {
	xs := []float64{0.0, 1.0, 2.0, 3.0}
	ys := []float64{1.0, 3.0, 5.0, 7.0}
	slope, intercept, ok := leastSquares(xs, ys)
	test.That(t, ok)
	test.Float(t, slope, 2.0)
	test.Float(t, intercept, 1.0)

	_, _, ok = leastSquares([]float64{1.0}, []float64{2.0})
	test.That(t, !ok)
	_, _, ok = leastSquares([]float64{2.0, 2.0}, []float64{1.0, 5.0})
	test.That(t, !ok) // vertical data has no least-squares line
}

func TestMinGap(t *testing.T) {
	test.Float(t, minGap([]float64{3.0, 1.0, 2.0, 2.0}), 1.0)
	test.Float(t, minGap([]float64{5.0}), 1.0)
	test.Float(t, minGap(nil), 1.0)
}
