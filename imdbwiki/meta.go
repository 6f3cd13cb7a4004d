package imdbwiki

import (
	"math"
	"os"
	"time"

	"github.com/daniellowtw/matlab"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go-ml.dev/pkg/zorros"
)

// The upstream IMDB-Wiki annotations ship as MATLAB files. BuildMeta expects
// the celebrity fields exported as top-level variables: full_path, gender,
// dob (MATLAB datenum) and photo_taken.

/*
BuildMeta converts upstream .mat annotations into the meta.csv table
consumed by Annotations. Rows with unknown gender or an implausible
computed age are dropped. It returns the count of rows written.
*/
func BuildMeta(matPath, outPath string) (int, error) {
	f, err := os.Open(matPath)
	if err != nil {
		return 0, zorros.Wrapf(err, "failed to open annotations `%v`: %v", matPath, err)
	}
	defer f.Close()
	mf, err := matlab.NewFileFromReader(f)
	if err != nil {
		return 0, zorros.Wrapf(err, "failed to parse annotations `%v`: %v", matPath, err)
	}
	values := func(name string) ([]interface{}, error) {
		v, found := mf.GetVar(name)
		if !found {
			return nil, zorros.Errorf("annotations have no variable `%v`", name)
		}
		return v.Value(), nil
	}
	raw := map[string][]interface{}{}
	for _, name := range []string{"full_path", "gender", "dob", "photo_taken"} {
		if raw[name], err = values(name); err != nil {
			return 0, err
		}
	}
	paths, err := matStrings("full_path", raw["full_path"])
	if err != nil {
		return 0, err
	}
	gender, err := matFloats("gender", raw["gender"])
	if err != nil {
		return 0, err
	}
	dob, err := matFloats("dob", raw["dob"])
	if err != nil {
		return 0, err
	}
	taken, err := matFloats("photo_taken", raw["photo_taken"])
	if err != nil {
		return 0, err
	}
	n := len(paths)
	if len(gender) != n || len(dob) != n || len(taken) != n {
		return 0, zorros.Errorf("annotation variables disagree on length: %d/%d/%d/%d",
			n, len(gender), len(dob), len(taken))
	}
	var outPaths, outGender []string
	var outAge []int
	for i := 0; i < n; i++ {
		if math.IsNaN(gender[i]) {
			continue
		}
		age := int(taken[i]) - DatenumYear(dob[i])
		if age <= 0 || age > 100 {
			continue
		}
		g := "female"
		if gender[i] == 1 {
			g = "male"
		}
		outPaths = append(outPaths, paths[i])
		outGender = append(outGender, g)
		outAge = append(outAge, age)
	}
	df := dataframe.New(
		series.New(outPaths, series.String, "path"),
		series.New(outGender, series.String, "gender"),
		series.New(outAge, series.Int, "age"),
	)
	if df.Err != nil {
		return 0, zorros.Trace(df.Err)
	}
	w, err := os.Create(outPath)
	if err != nil {
		return 0, zorros.Wrapf(err, "failed to create `%v`: %v", outPath, err)
	}
	defer w.Close()
	if err = df.WriteCSV(w); err != nil {
		return 0, zorros.Trace(err)
	}
	return len(outPaths), nil
}

/*
DatenumYear returns the calendar year of a MATLAB datenum
(day 1 is January 1st of year 0)
*/
func DatenumYear(d float64) int {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(d)-1).Year()
}

func matStrings(name string, values []interface{}) ([]string, error) {
	r := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case string:
			r[i] = x
		case []byte:
			r[i] = string(x)
		default:
			return nil, zorros.Errorf("variable `%v` element %d is %T, not a string", name, i, v)
		}
	}
	return r, nil
}

func matFloats(name string, values []interface{}) ([]float64, error) {
	r := make([]float64, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case float64:
			r[i] = x
		case float32:
			r[i] = float64(x)
		case int32:
			r[i] = float64(x)
		case int16:
			r[i] = float64(x)
		case uint16:
			r[i] = float64(x)
		case uint8:
			r[i] = float64(x)
		default:
			return nil, zorros.Errorf("variable `%v` element %d is %T, not a number", name, i, v)
		}
	}
	return r, nil
}
