package plot

import (
	"errors"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

const gapCSV = `country,income,life_expectancy,population,region
Afghanistan,975,43.8,31890000,Asia
Nigeria,2014,46.9,135031000,Africa
Brazil,9066,72.4,190011000,Americas
Germany,32170,79.4,82401000,Europe
Japan,31656,82.6,127467000,Asia
`

func gapdata(t *testing.T) *Dataset {
	t.Helper()
	ds, err := ReadCSV(strings.NewReader(gapCSV))
	test.T(t, err, nil)
	return ds
}

func TestReadCSV(t *testing.T) {
	ds := gapdata(t)
	test.T(t, ds.Len(), 5)
	test.T(t, ds.Columns(), []string{"country", "income", "life_expectancy", "population", "region"})
	test.That(t, ds.Has("income"))
	test.That(t, !ds.Has("gdp"))
	test.That(t, ds.Numeric("income"))
	test.That(t, !ds.Numeric("country"))
	test.Float(t, ds.Float("life_expectancy", 2), 72.4)
	test.T(t, ds.String("country", 3), "Germany")
	test.T(t, ds.String("income", 0), "975")
}

func TestReadCSVRagged(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n3\n"))
	test.That(t, err != nil)

	var derr MalformedDatasetError
	test.That(t, errors.As(err, &derr))
	test.T(t, derr.Row, 2)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	var derr MalformedDatasetError
	test.That(t, errors.As(err, &derr))
}

func TestDatasetFromRecordsDuplicateColumn(t *testing.T) {
	_, err := DatasetFromRecords([]string{"a", "a"}, [][]string{{"1", "2"}})
	var derr MalformedDatasetError
	test.That(t, errors.As(err, &derr))
}

func TestLevelsFirstAppearance(t *testing.T) {
	ds := gapdata(t)
	test.T(t, ds.Levels("region"), []string{"Asia", "Africa", "Americas", "Europe"})
}
