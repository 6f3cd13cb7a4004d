/*
Package imdbwiki implements loading of the IMDB-Wiki face dataset:
the meta.csv annotation table with a seeded train/test split, and the
image+age dataset built on top of it.
*/
package imdbwiki

import (
	"image"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"go-ml.dev/pkg/zorros"

	"github.com/jpgard/differential-privacy-vs-fairness/annodb"
	"github.com/jpgard/differential-privacy-vs-fairness/dataset"
	"github.com/jpgard/differential-privacy-vs-fairness/fu"
	"github.com/jpgard/differential-privacy-vs-fairness/tabular"
	"github.com/jpgard/differential-privacy-vs-fairness/transform"
)

const (
	// MetaFile is the annotation table name under the dataset root.
	MetaFile = "meta.csv"
	// SplitSeed fixes the train/test partition across runs.
	SplitSeed = 948292
	// TrainFraction of the annotation rows goes to the train part.
	TrainFraction = 0.9
)

var (
	Mean = []float32{0.465727, 0.377981, 0.331473}
	Std  = []float32{0.286456, 0.254825, 0.248889}

	genderCodes = map[string]int{"male": 1, "female": 0}
)

var geometry = transform.Config{
	Size:     image.Pt(80, 80),
	Crop:     image.Pt(64, 64),
	Rotation: 30,
	Mean:     Mean,
	Std:      Std,
}

/*
Config defines an IMDB-Wiki dataset instance
*/
type Config struct {
	Root      string // directory with meta.csv and the images
	Train     bool   // train or test part of the split
	Normalize bool   // normalize image tensors; required when Train
	TargetCol string // label column, "age" by default
	AttrCol   string // sensitive attribute column, "gender" by default
	Seed      int64  // augmentation seed, 0 means time-based
	CacheDB   string // optional sqlite annotation cache
	Loader    dataset.Loader
}

/*
Dataset is the IMDB-Wiki dataset
*/
type Dataset struct {
	dataset.Annotated
	pipeline *transform.Pipeline
	loader   dataset.Loader
}

func part(train bool) string {
	if train {
		return "train"
	}
	return "test"
}

/*
Annotations loads meta.csv from the dataset root, encodes gender as
male=1/female=0 and returns the requested part of the seeded 90/10 split
*/
func Annotations(root string, train bool) (dataframe.DataFrame, error) {
	df, err := tabular.Read(filepath.Join(root, MetaFile), tabular.ReadOpts{})
	if err != nil {
		return df, zorros.Trace(err)
	}
	if df, err = tabular.Replace(df, "gender", genderCodes); err != nil {
		return df, zorros.Trace(err)
	}
	tr, te, err := tabular.Split(df, TrainFraction, SplitSeed)
	if err != nil {
		return df, zorros.Trace(err)
	}
	if train {
		return tr, nil
	}
	return te, nil
}

func annotations(cfg Config) (dataframe.DataFrame, error) {
	if cfg.CacheDB == "" {
		return Annotations(cfg.Root, cfg.Train)
	}
	key := "imdbwiki-" + part(cfg.Train)
	df, ok, err := annodb.Load(cfg.CacheDB, key)
	if err != nil {
		return df, zorros.Trace(err)
	}
	if ok {
		return df, nil
	}
	if df, err = Annotations(cfg.Root, cfg.Train); err != nil {
		return df, zorros.Trace(err)
	}
	if err = annodb.Store(cfg.CacheDB, key, df); err != nil {
		return df, zorros.Trace(err)
	}
	return df, nil
}

/*
New creates an IMDB-Wiki dataset
*/
func New(cfg Config) (*Dataset, error) {
	if cfg.Train && !cfg.Normalize {
		return nil, zorros.Errorf("the train part must be normalized")
	}
	anno, err := annotations(cfg)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	for _, c := range []string{"path", fu.Fnzs(cfg.TargetCol, "age"), fu.Fnzs(cfg.AttrCol, "gender")} {
		if !tabular.HasCol(anno, c) {
			return nil, zorros.Errorf("annotations do not have column `%v`", c)
		}
	}
	g := geometry
	g.Seed = cfg.Seed
	var pipeline *transform.Pipeline
	if cfg.Train {
		pipeline, err = transform.Train(g)
	} else {
		pipeline, err = transform.Test(g, cfg.Normalize)
	}
	if err != nil {
		return nil, zorros.Trace(err)
	}
	loader := cfg.Loader
	if loader == nil {
		loader = dataset.DefaultLoader
	}
	return &Dataset{
		Annotated: dataset.Annotated{
			Root:         cfg.Root,
			Anno:         anno,
			PathCol:      "path",
			TargetCol:    fu.Fnzs(cfg.TargetCol, "age"),
			AttrCol:      fu.Fnzs(cfg.AttrCol, "gender"),
			MajorityKeys: []float64{1},
			MinorityKeys: []float64{0},
		},
		pipeline: pipeline,
		loader:   loader,
	}, nil
}

/*
Item loads and transforms the image of row i;
the label is the target value as a one-element vector
*/
func (d *Dataset) Item(i int) (dataset.Sample, error) {
	if i < 0 || i >= d.Len() {
		return dataset.Sample{}, zorros.Errorf("index %d is out of range [0,%d)", i, d.Len())
	}
	img, err := d.loader(filepath.Join(d.Root, d.Filepaths()[i]))
	if err != nil {
		return dataset.Sample{}, zorros.Trace(err)
	}
	t, err := d.pipeline.Apply(img)
	if err != nil {
		return dataset.Sample{}, zorros.Trace(err)
	}
	return dataset.Sample{Image: t, Index: i, Label: d.Targets()[i]}, nil
}
