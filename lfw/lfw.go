/*
Package lfw implements loading of the LFW (Labeled Faces in the Wild)
attributes dataset: the tab-separated attribute annotations with their
preprocessing and Dev train/test partitions, and the image dataset with
thresholded hard labels.
*/
package lfw

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go-ml.dev/pkg/zorros"

	"github.com/jpgard/differential-privacy-vs-fairness/annodb"
	"github.com/jpgard/differential-privacy-vs-fairness/dataset"
	"github.com/jpgard/differential-privacy-vs-fairness/fu"
	"github.com/jpgard/differential-privacy-vs-fairness/tabular"
	"github.com/jpgard/differential-privacy-vs-fairness/transform"
)

const (
	// AnnoFile is the attribute annotation table under the dataset root.
	AnnoFile = "lfw_attributes_cleaned.txt"
	// TrainIdsFile and TestIdsFile hold the Dev partition person lists.
	TrainIdsFile = "peopleDevTrain.txt"
	TestIdsFile  = "peopleDevTest.txt"
	// DefaultImageSubdir holds the face images under the dataset root.
	DefaultImageSubdir = "lfw-deepfunneled"

	TrainPartition = "train"
	TestPartition  = "test"
)

var (
	Mean = []float32{0.463666, 0.390829, 0.339801}
	Std  = []float32{0.282721, 0.253934, 0.247486}
)

var geometry = transform.Config{
	Size:     image.Pt(80, 80),
	Crop:     image.Pt(64, 64),
	Rotation: 30,
	Mean:     Mean,
	Std:      Std,
}

var filenameRe = regexp.MustCompile(`^(\D+)_(\d{4})\.jpg`)

/*
ExtractPerson returns the person name encoded in an LFW image filename
*/
func ExtractPerson(path string) (string, bool) {
	m := filenameRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

/*
ExtractImageNum returns the four-digit image number encoded in an LFW
image filename
*/
func ExtractImageNum(path string) (string, bool) {
	m := filenameRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[2], true
}

/*
FilePattern returns the glob pattern matching all LFW images under dir
*/
func FilePattern(dir string) string {
	return filepath.Join(dir, "*", "*.jpg")
}

func idsFile(partition string) (string, error) {
	switch partition {
	case TrainPartition:
		return TrainIdsFile, nil
	case TestPartition:
		return TestIdsFile, nil
	}
	return "", zorros.Errorf("invalid partition `%v`", partition)
}

/*
Annotations loads the attribute table from the dataset root and applies its
preprocessing: optional abs-threshold on the label column, derived columns
(imagenum_str, underscored person, img_basepath, Mouth_Open) and subsetting
to the Dev partition by person membership.
*/
func Annotations(root, partition, labelCol string, labelThreshold float64) (dataframe.DataFrame, error) {
	ids, err := idsFile(partition)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df, err := tabular.Read(filepath.Join(root, AnnoFile), tabular.ReadOpts{Delimiter: '\t'})
	if err != nil {
		return df, zorros.Trace(err)
	}
	if labelThreshold != 0 {
		if df, err = tabular.Thresh(df, labelCol, labelThreshold, true); err != nil {
			return df, zorros.Trace(err)
		}
	}
	if df, err = derive(df); err != nil {
		return df, zorros.Trace(err)
	}
	return dataset.Partition(df, "person", filepath.Join(root, ids))
}

func derive(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, c := range []string{"person", "imagenum", "Mouth_Closed"} {
		if !tabular.HasCol(df, c) {
			return df, zorros.Errorf("annotations do not have column `%v`", c)
		}
	}
	nums := df.Col("imagenum").Float()
	numStr := make([]string, len(nums))
	for i, v := range nums {
		numStr[i] = fmt.Sprintf("%04d", int(v))
	}
	persons := df.Col("person").Records()
	basepath := make([]string, len(persons))
	for i, p := range persons {
		p = strings.ReplaceAll(p, " ", "_")
		persons[i] = p
		basepath[i] = p + "/" + p + "_" + numStr[i] + ".jpg"
	}
	closed := df.Col("Mouth_Closed").Float()
	open := make([]float64, len(closed))
	for i, v := range closed {
		open[i] = 1 - v
	}
	q := df.
		Mutate(series.New(numStr, series.String, "imagenum_str")).
		Mutate(series.New(persons, series.String, "person")).
		Mutate(series.New(basepath, series.String, "img_basepath")).
		Mutate(series.New(open, series.Float, "Mouth_Open"))
	return q, q.Err
}

/*
Config defines an LFW dataset instance
*/
type Config struct {
	Root        string  // directory with the annotations and images
	Partition   string  // "train" or "test"
	TargetCol   string  // label column (a soft attribute score)
	AttrCol     string  // sensitive attribute column
	Threshold   float64 // abs-threshold on the label column, 0 disables
	ImageSubdir string  // image directory name, lfw-deepfunneled by default
	Normalize   bool    // normalize image tensors
	Seed        int64   // augmentation seed, 0 means time-based
	CacheDB     string  // optional sqlite annotation cache
	Loader      dataset.Loader

	// group keys over the thresholded attribute, optional
	MajorityKeys []float64
	MinorityKeys []float64
}

/*
Dataset is the LFW attributes dataset
*/
type Dataset struct {
	dataset.Annotated
	threshold   float64
	imageSubdir string
	pipeline    *transform.Pipeline
	loader      dataset.Loader
}

func annotations(cfg Config) (dataframe.DataFrame, error) {
	if cfg.CacheDB == "" {
		return Annotations(cfg.Root, cfg.Partition, cfg.TargetCol, cfg.Threshold)
	}
	key := fmt.Sprintf("lfw-%v-%v-%v", cfg.Partition, cfg.TargetCol, cfg.Threshold)
	df, ok, err := annodb.Load(cfg.CacheDB, key)
	if err != nil {
		return df, zorros.Trace(err)
	}
	if ok {
		return df, nil
	}
	if df, err = Annotations(cfg.Root, cfg.Partition, cfg.TargetCol, cfg.Threshold); err != nil {
		return df, zorros.Trace(err)
	}
	if err = annodb.Store(cfg.CacheDB, key, df); err != nil {
		return df, zorros.Trace(err)
	}
	return df, nil
}

/*
New creates an LFW dataset
*/
func New(cfg Config) (*Dataset, error) {
	if cfg.TargetCol == "" {
		return nil, zorros.Errorf("a target column is required")
	}
	anno, err := annotations(cfg)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	cols := []string{"img_basepath", cfg.TargetCol}
	if cfg.AttrCol != "" {
		cols = append(cols, cfg.AttrCol)
	}
	for _, c := range cols {
		if !tabular.HasCol(anno, c) {
			return nil, zorros.Errorf("annotations do not have column `%v`", c)
		}
	}
	g := geometry
	g.Seed = cfg.Seed
	var pipeline *transform.Pipeline
	switch cfg.Partition {
	case TrainPartition:
		pipeline, err = transform.Train(g)
	case TestPartition:
		pipeline, err = transform.Test(g, cfg.Normalize)
	default:
		err = zorros.Errorf("invalid partition `%v`", cfg.Partition)
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
			PathCol:      "img_basepath",
			TargetCol:    cfg.TargetCol,
			AttrCol:      cfg.AttrCol,
			MajorityKeys: cfg.MajorityKeys,
			MinorityKeys: cfg.MinorityKeys,
		},
		threshold:   cfg.Threshold,
		imageSubdir: fu.Fnzs(cfg.ImageSubdir, DefaultImageSubdir),
		pipeline:    pipeline,
		loader:      loader,
	}, nil
}

/*
Item loads and transforms the image of row i; the label is the hard
target: 1 when the soft score is positive and 0 otherwise
*/
func (d *Dataset) Item(i int) (dataset.Sample, error) {
	if i < 0 || i >= d.Len() {
		return dataset.Sample{}, zorros.Errorf("index %d is out of range [0,%d)", i, d.Len())
	}
	img, err := d.loader(filepath.Join(d.Root, d.imageSubdir, d.Filepaths()[i]))
	if err != nil {
		return dataset.Sample{}, zorros.Trace(err)
	}
	t, err := d.pipeline.Apply(img)
	if err != nil {
		return dataset.Sample{}, zorros.Trace(err)
	}
	label := []float32{0}
	if d.Targets()[i][0] > 0 {
		label[0] = 1
	}
	return dataset.Sample{Image: t, Index: i, Label: label}, nil
}

/*
AttributeAnnotations returns the attribute values at the given row indexes
revalued by the threshold: x < -t is 0, x > t is 1, NaN in between
*/
func (d *Dataset) AttributeAnnotations(idxs []int) ([]float64, error) {
	attrs, err := d.Annotated.AttributeAnnotations(idxs)
	if err != nil {
		return nil, err
	}
	for i, x := range attrs {
		switch {
		case x < -d.threshold:
			attrs[i] = 0
		case x > d.threshold:
			attrs[i] = 1
		default:
			attrs[i] = math.NaN()
		}
	}
	return attrs, nil
}
