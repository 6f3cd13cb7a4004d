package dataset

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"gotest.tools/assert"
)

func testAnno() dataframe.DataFrame {
	rec := [][]string{{"path", "age", "gender"}}
	// 8 majority rows (gender=1) and 4 minority rows (gender=0)
	for i := 0; i < 8; i++ {
		rec = append(rec, []string{"m.jpg", "30", "1"})
	}
	for i := 0; i < 4; i++ {
		rec = append(rec, []string{"f.jpg", "40", "0"})
	}
	return dataframe.LoadRecords(rec)
}

func testAnnotated() *Annotated {
	return &Annotated{
		Root:         "/data",
		Anno:         testAnno(),
		PathCol:      "path",
		TargetCol:    "age",
		AttrCol:      "gender",
		MajorityKeys: []float64{1},
		MinorityKeys: []float64{0},
		Rand:         rand.New(rand.NewSource(1)),
	}
}

func Test_Accessors(t *testing.T) {
	a := testAnnotated()
	assert.Assert(t, a.Len() == 12)
	assert.Assert(t, len(a.Filepaths()) == 12)
	assert.Assert(t, a.Filepaths()[0] == "m.jpg")
	assert.Assert(t, a.Attributes()[0] == 1)
	assert.Assert(t, a.Attributes()[11] == 0)
	assert.DeepEqual(t, a.Targets()[11], []float32{40})
	assert.Assert(t, len(a.MajorityIdxs()) == 8)
	assert.Assert(t, len(a.MinorityIdxs()) == 4)
	assert.Assert(t, a.MinorityIdxs()[0] == 8)
}

func Test_AttributeAnnotations(t *testing.T) {
	a := testAnnotated()
	attrs, err := a.AttributeAnnotations([]int{0, 8})
	assert.NilError(t, err)
	assert.DeepEqual(t, attrs, []float64{1, 0})

	_, err = a.AttributeAnnotations([]int{12})
	assert.Assert(t, err != nil)
	_, err = a.AttributeAnnotations([]int{-1})
	assert.Assert(t, err != nil)
}

func Test_ApplyAlpha(t *testing.T) {
	a := testAnnotated()
	assert.NilError(t, a.ApplyAlpha(0.75, 8))
	assert.Assert(t, a.Len() == 8)
	assert.Assert(t, len(a.MajorityIdxs()) == 6)
	assert.Assert(t, len(a.MinorityIdxs()) == 2)
	minFrac := float64(len(a.MinorityIdxs())) / float64(a.Len())
	assert.Assert(t, math.Abs(minFrac-0.25) < 0.001)
}

func Test_ApplyAlphaErrors(t *testing.T) {
	a := testAnnotated()
	assert.Assert(t, a.ApplyAlpha(0.5, 0) != nil)  // no fixed size
	assert.Assert(t, a.ApplyAlpha(0.5, 13) != nil) // exceeds data size
	assert.Assert(t, a.ApplyAlpha(-0.1, 4) != nil) // alpha out of range
	assert.Assert(t, a.ApplyAlpha(1.1, 4) != nil)  // alpha out of range
	assert.Assert(t, a.ApplyAlpha(0.1, 10) != nil) // minority too small
	assert.Assert(t, a.Len() == 12)                // untouched on error
	assert.NilError(t, a.ApplyAlpha(1, 8))         // majority only
	assert.Assert(t, len(a.MinorityIdxs()) == 0)
}

func Test_Partition(t *testing.T) {
	ids := filepath.Join(t.TempDir(), "ids.txt")
	assert.NilError(t, os.WriteFile(ids, []byte("1\nAaron_Peirsol\t2\n"), 0644))
	df := dataframe.LoadRecords([][]string{
		{"person", "v"},
		{"Aaron_Peirsol", "1"},
		{"Zico", "2"},
	})
	q, err := Partition(df, "person", ids)
	assert.NilError(t, err)
	assert.Assert(t, q.Nrow() == 1)
	assert.Assert(t, q.Col("person").Records()[0] == "Aaron_Peirsol")

	_, err = Partition(df, "person", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Assert(t, err != nil)
}

func Test_DefaultLoader(t *testing.T) {
	_, err := DefaultLoader(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Assert(t, err != nil)
}
