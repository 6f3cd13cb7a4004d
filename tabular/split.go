package tabular

import (
	"bufio"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"go-ml.dev/pkg/zorros"
)

/*
Split divides a dataframe into train and test parts.
The rows are permuted with the given seed and the first
floor(trainFrac*n) of them become the train part, so the
result is deterministic for a fixed seed.
*/
func Split(df dataframe.DataFrame, trainFrac float64, seed int64) (train, test dataframe.DataFrame, err error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		err = zorros.Errorf("train fraction %v is out of (0,1)", trainFrac)
		return
	}
	n := df.Nrow()
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	k := int(trainFrac * float64(n))
	train = df.Subset(perm[:k])
	if train.Err != nil {
		err = zorros.Trace(train.Err)
		return
	}
	test = df.Subset(perm[k:])
	if test.Err != nil {
		err = zorros.Trace(test.Err)
	}
	return
}

/*
ReadIds loads row identifiers from a partition file.
Every line contributes its first tab-separated field; a leading
line holding only a count (like in the LFW people lists) is skipped.
*/
func ReadIds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open partition file `%v`: %v", path, err)
	}
	defer f.Close()
	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		id := strings.SplitN(line, "\t", 2)[0]
		if len(ids) == 0 {
			if _, e := strconv.Atoi(strings.TrimSpace(id)); e == nil && !strings.Contains(line, "\t") {
				continue // header count
			}
		}
		ids = append(ids, id)
	}
	if err = sc.Err(); err != nil {
		return nil, zorros.Wrapf(err, "failed to read partition file `%v`: %v", path, err)
	}
	return ids, nil
}
