/*
Package annodb caches preprocessed annotation tables in a sqlite database,
so repeated runs skip CSV parsing and preprocessing.
*/
package annodb

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
)

/*
DefaultPath returns the per-user location of the annotation cache database
*/
func DefaultPath() string {
	return iokit.CacheFile(filepath.Join("dpfair", "annotations.db"))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func tableName(name string) string {
	return quote("anno_" + name)
}

/*
Store writes an annotation table into the cache database under the given name,
replacing any previous version
*/
func Store(path, name string, df dataframe.DataFrame) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return zorros.Wrapf(err, "failed to open annotation cache `%v`: %v", path, err)
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		return zorros.Trace(err)
	}
	defer tx.Rollback()
	if _, err = tx.Exec(`create table if not exists anno_types (tab text, col text, seq integer, kind text, primary key (tab, col))`); err != nil {
		return zorros.Trace(err)
	}
	if _, err = tx.Exec(`delete from anno_types where tab = ?`, name); err != nil {
		return zorros.Trace(err)
	}
	if _, err = tx.Exec(`drop table if exists ` + tableName(name)); err != nil {
		return zorros.Trace(err)
	}
	names := df.Names()
	types := df.Types()
	cols := make([]string, len(names))
	hold := make([]string, len(names))
	for i, c := range names {
		cols[i] = quote(c) + ` text`
		hold[i] = "?"
		if _, err = tx.Exec(`insert into anno_types (tab, col, seq, kind) values (?, ?, ?, ?)`,
			name, c, i, string(types[i])); err != nil {
			return zorros.Trace(err)
		}
	}
	if _, err = tx.Exec(fmt.Sprintf(`create table %v (%v)`, tableName(name), strings.Join(cols, ", "))); err != nil {
		return zorros.Trace(err)
	}
	ins, err := tx.Prepare(fmt.Sprintf(`insert into %v values (%v)`, tableName(name), strings.Join(hold, ", ")))
	if err != nil {
		return zorros.Trace(err)
	}
	defer ins.Close()
	records := df.Records()
	for _, rec := range records[1:] {
		args := make([]interface{}, len(rec))
		for i, v := range rec {
			args[i] = v
		}
		if _, err = ins.Exec(args...); err != nil {
			return zorros.Trace(err)
		}
	}
	return zorros.Trace(tx.Commit())
}

/*
Load reads an annotation table from the cache database.
The second result is false when the table is not cached.
*/
func Load(path, name string) (dataframe.DataFrame, bool, error) {
	none := dataframe.DataFrame{}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return none, false, zorros.Wrapf(err, "failed to open annotation cache `%v`: %v", path, err)
	}
	defer db.Close()
	rows, err := db.Query(`select col, kind from anno_types where tab = ? order by seq`, name)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			// The cache database exists but has never been written to.
			return none, false, nil
		}
		return none, false, zorros.Wrapf(err, "failed to read annotation cache `%v`: %v", path, err)
	}
	defer rows.Close()
	var cols []string
	kinds := map[string]series.Type{}
	for rows.Next() {
		var col, kind string
		if err = rows.Scan(&col, &kind); err != nil {
			return none, false, zorros.Trace(err)
		}
		cols = append(cols, col)
		kinds[col] = series.Type(kind)
	}
	if err = rows.Err(); err != nil {
		return none, false, zorros.Trace(err)
	}
	if len(cols) == 0 {
		return none, false, nil
	}
	data, err := db.Query(`select * from ` + tableName(name))
	if err != nil {
		return none, false, zorros.Wrapf(err, "annotation cache `%v` is inconsistent: %v", path, err)
	}
	defer data.Close()
	records := [][]string{cols}
	for data.Next() {
		rec := make([]string, len(cols))
		args := make([]interface{}, len(cols))
		for i := range rec {
			args[i] = &rec[i]
		}
		if err = data.Scan(args...); err != nil {
			return none, false, zorros.Trace(err)
		}
		records = append(records, rec)
	}
	if err = data.Err(); err != nil {
		return none, false, zorros.Trace(err)
	}
	df := dataframe.LoadRecords(records, dataframe.WithTypes(kinds))
	if df.Err != nil {
		return none, false, zorros.Trace(df.Err)
	}
	return df, true, nil
}
