/*
Package tabular implements reading and preprocessing of dataset annotation
tables on top of gota dataframes.
*/
package tabular

import (
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/zorros"
)

/*
ReadOpts defines how an annotation file is parsed
*/
type ReadOpts struct {
	Delimiter rune // 0 means comma
}

/*
Read loads an annotation file into a dataframe.
Files with the .xz suffix are decompressed on the fly.
*/
func Read(path string, opts ReadOpts) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, zorros.Wrapf(err, "failed to open annotations `%v`: %v", path, err)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if r, err = xz.NewReader(f); err != nil {
			return dataframe.DataFrame{}, zorros.Wrapf(err, "failed to decompress annotations `%v`: %v", path, err)
		}
	}
	ldopts := []dataframe.LoadOption{dataframe.HasHeader(true)}
	if opts.Delimiter != 0 {
		ldopts = append(ldopts, dataframe.WithDelimiter(opts.Delimiter))
	}
	df := dataframe.ReadCSV(r, ldopts...)
	if df.Err != nil {
		return dataframe.DataFrame{}, zorros.Wrapf(df.Err, "failed to parse annotations `%v`: %v", path, df.Err)
	}
	return df, nil
}

/*
HasCol returns true if the dataframe contains the named column
*/
func HasCol(df dataframe.DataFrame, name string) bool {
	for _, c := range df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

/*
Replace substitutes string values of a column by numbers,
e.g. {"male": 1, "female": 0}
*/
func Replace(df dataframe.DataFrame, col string, mapping map[string]int) (dataframe.DataFrame, error) {
	if !HasCol(df, col) {
		return df, zorros.Errorf("annotations do not have column `%v`", col)
	}
	rec := df.Col(col).Records()
	vals := make([]int, len(rec))
	for i, s := range rec {
		v, ok := mapping[s]
		if !ok {
			return df, zorros.Errorf("column `%v` has unmapped value `%v`", col, s)
		}
		vals[i] = v
	}
	q := df.Mutate(series.New(vals, series.Int, col))
	return q, q.Err
}
