package annodb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"gotest.tools/assert"
)

func testDf() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"path", "gender", "age", "score"},
		{"a.jpg", "1", "30", "0.5"},
		{"b.jpg", "0", "40", "-1.25"},
	})
}

func Test_StoreLoad(t *testing.T) {
	db := filepath.Join(t.TempDir(), "anno.db")
	df := testDf()
	assert.NilError(t, Store(db, "imdbwiki-train", df))

	q, ok, err := Load(db, "imdbwiki-train")
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Assert(t, q.Nrow() == 2)
	assert.DeepEqual(t, q.Names(), df.Names())
	assert.DeepEqual(t, q.Col("path").Records(), df.Col("path").Records())
	assert.DeepEqual(t, q.Col("age").Float(), df.Col("age").Float())
	assert.DeepEqual(t, q.Col("score").Float(), df.Col("score").Float())
	// column types survive the roundtrip
	assert.DeepEqual(t, q.Types(), df.Types())
}

func Test_LoadMissing(t *testing.T) {
	db := filepath.Join(t.TempDir(), "anno.db")
	_, ok, err := Load(db, "nope")
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	// a cached table does not leak into other names
	assert.NilError(t, Store(db, "one", testDf()))
	_, ok, err = Load(db, "two")
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func Test_LoadCorrupt(t *testing.T) {
	db := filepath.Join(t.TempDir(), "anno.db")
	assert.NilError(t, os.WriteFile(db, []byte("not a sqlite database"), 0644))
	_, ok, err := Load(db, "t")
	assert.Assert(t, !ok)
	assert.Assert(t, err != nil)
}

func Test_StoreReplace(t *testing.T) {
	db := filepath.Join(t.TempDir(), "anno.db")
	assert.NilError(t, Store(db, "t", testDf()))
	small := dataframe.LoadRecords([][]string{
		{"path", "age"},
		{"c.jpg", "50"},
	})
	assert.NilError(t, Store(db, "t", small))
	q, ok, err := Load(db, "t")
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Assert(t, q.Nrow() == 1)
	assert.DeepEqual(t, q.Names(), []string{"path", "age"})
}
