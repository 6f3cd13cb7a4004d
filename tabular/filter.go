package tabular

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go-ml.dev/pkg/zorros"
)

/*
Thresh filters rows by df[col] >= thresh, optionally applying abs() first
*/
func Thresh(df dataframe.DataFrame, col string, thresh float64, useAbs bool) (dataframe.DataFrame, error) {
	if !HasCol(df, col) {
		return df, zorros.Errorf("annotations do not have column `%v`", col)
	}
	q := df.Filter(dataframe.F{
		Colname:    col,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			v := el.Float()
			if useAbs {
				v = math.Abs(v)
			}
			return v >= thresh
		},
	})
	return q, q.Err
}

/*
In filters rows whose col value belongs to the given identifier set
*/
func In(df dataframe.DataFrame, col string, ids []string) (dataframe.DataFrame, error) {
	if !HasCol(df, col) {
		return df, zorros.Errorf("annotations do not have column `%v`", col)
	}
	member := map[string]bool{}
	for _, id := range ids {
		member[id] = true
	}
	q := df.Filter(dataframe.F{
		Colname:    col,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return member[el.String()]
		},
	})
	return q, q.Err
}
