package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/ulikunitz/xz"
	"gotest.tools/assert"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_Read(t *testing.T) {
	path := writeFile(t, "meta.csv", "path,gender,age\na.jpg,male,30\nb.jpg,female,40\n")
	df, err := Read(path, ReadOpts{})
	assert.NilError(t, err)
	assert.Assert(t, df.Nrow() == 2)
	assert.DeepEqual(t, df.Names(), []string{"path", "gender", "age"})
}

func Test_ReadTsv(t *testing.T) {
	path := writeFile(t, "anno.txt", "person\timagenum\nAaron Peirsol\t1\n")
	df, err := Read(path, ReadOpts{Delimiter: '\t'})
	assert.NilError(t, err)
	assert.Assert(t, df.Nrow() == 1)
	assert.Assert(t, df.Col("person").Records()[0] == "Aaron Peirsol")
}

func Test_ReadXz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.csv.xz")
	f, err := os.Create(path)
	assert.NilError(t, err)
	w, err := xz.NewWriter(f)
	assert.NilError(t, err)
	_, err = w.Write([]byte("path,age\na.jpg,30\n"))
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	assert.NilError(t, f.Close())

	df, err := Read(path, ReadOpts{})
	assert.NilError(t, err)
	assert.Assert(t, df.Nrow() == 1)
	assert.Assert(t, df.Col("age").Float()[0] == 30)
}

func Test_ReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"), ReadOpts{})
	assert.Assert(t, err != nil)
}

func Test_Replace(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"path", "gender"},
		{"a.jpg", "male"},
		{"b.jpg", "female"},
		{"c.jpg", "male"},
	})
	q, err := Replace(df, "gender", map[string]int{"male": 1, "female": 0})
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Col("gender").Float(), []float64{1, 0, 1})

	_, err = Replace(df, "nope", map[string]int{})
	assert.Assert(t, err != nil)
	_, err = Replace(df, "gender", map[string]int{"male": 1})
	assert.Assert(t, err != nil) // female unmapped
}

func Test_Thresh(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"person", "Male"},
		{"a", "-2.5"},
		{"b", "-0.5"},
		{"c", "0.7"},
		{"d", "3.1"},
	})
	q, err := Thresh(df, "Male", 1, true)
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Col("person").Records(), []string{"a", "d"})

	q, err = Thresh(df, "Male", 1, false)
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Col("person").Records(), []string{"d"})

	_, err = Thresh(df, "nope", 1, true)
	assert.Assert(t, err != nil)
}

func Test_In(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"person", "v"},
		{"a", "1"},
		{"b", "2"},
		{"c", "3"},
	})
	q, err := In(df, "person", []string{"c", "a"})
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Col("person").Records(), []string{"a", "c"})
}

func Test_Split(t *testing.T) {
	rec := [][]string{{"id"}}
	for i := 0; i < 10; i++ {
		rec = append(rec, []string{string(rune('a' + i))})
	}
	df := dataframe.LoadRecords(rec)
	train, test, err := Split(df, 0.9, 948292)
	assert.NilError(t, err)
	assert.Assert(t, train.Nrow() == 9)
	assert.Assert(t, test.Nrow() == 1)

	// deterministic for a fixed seed
	train2, test2, err := Split(df, 0.9, 948292)
	assert.NilError(t, err)
	assert.DeepEqual(t, train.Col("id").Records(), train2.Col("id").Records())
	assert.DeepEqual(t, test.Col("id").Records(), test2.Col("id").Records())

	// train and test are disjoint and cover everything
	seen := map[string]bool{}
	for _, id := range append(train.Col("id").Records(), test.Col("id").Records()...) {
		assert.Assert(t, !seen[id])
		seen[id] = true
	}
	assert.Assert(t, len(seen) == 10)

	_, _, err = Split(df, 0, 1)
	assert.Assert(t, err != nil)
	_, _, err = Split(df, 1, 1)
	assert.Assert(t, err != nil)
}

func Test_ReadIds(t *testing.T) {
	path := writeFile(t, "peopleDevTrain.txt", "2\nAaron_Peirsol\t2\nZico\t1\n")
	ids, err := ReadIds(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, ids, []string{"Aaron_Peirsol", "Zico"})

	// no count header
	path = writeFile(t, "ids.txt", "Aaron_Peirsol\t2\n\nZico\t1\n")
	ids, err = ReadIds(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, ids, []string{"Aaron_Peirsol", "Zico"})
}
