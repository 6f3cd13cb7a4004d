/*
Package dataset defines the abstraction of an annotated face-image dataset:
an annotation table joined with on-disk images, per-index sample retrieval,
and subsetting of the table by a sensitive attribute.
*/
package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"

	"github.com/jpgard/differential-privacy-vs-fairness/fu"
	"github.com/jpgard/differential-privacy-vs-fairness/tabular"
	"github.com/jpgard/differential-privacy-vs-fairness/transform"
)

/*
Sample is a single dataset item: the transformed image, the index it was
retrieved at and the label vector
*/
type Sample struct {
	Image *transform.Tensor
	Index int
	Label []float32
}

/*
Dataset is an abstraction of some source of annotated images to feed hungry models
*/
type Dataset interface {
	Len() int
	Item(i int) (Sample, error)
}

/*
Annotated is the common core of the dataset variants: an annotation table
with named path/target/attribute columns and majority/minority group keys
defined over the attribute column.
*/
type Annotated struct {
	Root         string              // directory with all the images
	Anno         dataframe.DataFrame // annotation table
	PathCol      string              // column with image paths relative to Root
	TargetCol    string              // column with training labels
	AttrCol      string              // column with the sensitive attribute
	MajorityKeys []float64           // attribute values of the majority group
	MinorityKeys []float64           // attribute values of the minority group
	Rand         *rand.Rand          // sampling source, time-seeded if nil
}

func (a *Annotated) Len() int {
	return a.Anno.Nrow()
}

/*
Filepaths returns the relative image path of every row
*/
func (a *Annotated) Filepaths() []string {
	return a.Anno.Col(a.PathCol).Records()
}

/*
Attributes returns the sensitive attribute value of every row
*/
func (a *Annotated) Attributes() []float64 {
	return a.Anno.Col(a.AttrCol).Float()
}

/*
Targets returns the target of every row as a column of single-element rows
*/
func (a *Annotated) Targets() [][]float32 {
	return fu.Expandr(fu.Floats32(a.Anno.Col(a.TargetCol).Float()))
}

/*
MajorityIdxs returns the row indexes of the majority group
*/
func (a *Annotated) MajorityIdxs() []int {
	return fu.Idxin(a.Attributes(), a.MajorityKeys)
}

/*
MinorityIdxs returns the row indexes of the minority group
*/
func (a *Annotated) MinorityIdxs() []int {
	return fu.Idxin(a.Attributes(), a.MinorityKeys)
}

/*
AttributeAnnotations returns the attribute values at the given row indexes
*/
func (a *Annotated) AttributeAnnotations(idxs []int) ([]float64, error) {
	attrs := a.Attributes()
	r := make([]float64, len(idxs))
	for i, j := range idxs {
		if j < 0 || j >= len(attrs) {
			zlog.Warning(fmt.Sprintf("annotation index %d is out of range [0,%d)", j, len(attrs)))
			return nil, zorros.Errorf("annotation index %d is out of range [0,%d)", j, len(attrs))
		}
		r[i] = attrs[j]
	}
	return r, nil
}

func (a *Annotated) rng() *rand.Rand {
	if a.Rand == nil {
		a.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a.Rand
}

/*
ApplyAlpha subsets the annotation table to nTrain rows mixing the majority
and minority groups: floor(alpha*nTrain) rows are sampled without replacement
from the majority group and the rest from the minority group. After the call
the achieved minority fraction is within 1e-3 of 1-alpha.
*/
func (a *Annotated) ApplyAlpha(alpha float64, nTrain int) error {
	if alpha < 0 || alpha > 1 {
		return zorros.Errorf("alpha %v is out of [0,1]", alpha)
	}
	if nTrain <= 0 {
		return zorros.Errorf("fixed training set size is required to apply alpha")
	}
	maj, mnr := a.MajorityIdxs(), a.MinorityIdxs()
	if nTrain > len(maj)+len(mnr) {
		return zorros.Errorf("fixed training set size %d exceeds the full data size %d",
			nTrain, len(maj)+len(mnr))
	}
	nMaj := int(alpha * float64(nTrain))
	nMin := nTrain - nMaj
	if nMaj > len(maj) || nMin > len(mnr) {
		return zorros.Errorf("cannot sample %d/%d rows from groups of %d/%d without replacement",
			nMaj, nMin, len(maj), len(mnr))
	}
	zlog.Info(fmt.Sprintf("sampling %d of %d majority rows %v", nMaj, len(maj), a.MajorityKeys))
	zlog.Info(fmt.Sprintf("sampling %d of %d minority rows %v", nMin, len(mnr), a.MinorityKeys))
	rng := a.rng()
	idx := append(fu.Sample(rng, maj, nMaj), fu.Sample(rng, mnr, nMin)...)
	q := a.Anno.Subset(idx)
	if q.Err != nil {
		return zorros.Trace(q.Err)
	}
	a.Anno = q
	if a.Len() != nMaj+nMin {
		return zorros.Errorf("subsetting produced %d rows instead of %d", a.Len(), nMaj+nMin)
	}
	if math.Abs(float64(nMin)/float64(a.Len())-(1-alpha)) >= 0.001 {
		return zorros.Errorf("achieved minority fraction %v is not within 0.001 of %v",
			float64(nMin)/float64(a.Len()), 1-alpha)
	}
	return nil
}

/*
Partition subsets a dataframe to the rows whose col value appears among
the identifiers listed in a partition file
*/
func Partition(df dataframe.DataFrame, col, partitionFile string) (dataframe.DataFrame, error) {
	ids, err := tabular.ReadIds(partitionFile)
	if err != nil {
		return df, zorros.Trace(err)
	}
	return tabular.In(df, col, ids)
}
