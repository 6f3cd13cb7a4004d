package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go-ml.dev/pkg/zorros"

	"github.com/jpgard/differential-privacy-vs-fairness/dataset"
	"github.com/jpgard/differential-privacy-vs-fairness/fu"
	"github.com/jpgard/differential-privacy-vs-fairness/imdbwiki"
	"github.com/jpgard/differential-privacy-vs-fairness/lfw"
)

type datasetFlags struct {
	data      string
	root      string
	partition string
	target    string
	attr      string
	threshold float64
	cacheDB   string
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "imdbwiki", "dataset: imdbwiki or lfw")
	cmd.Flags().StringVar(&f.root, "root", "", "dataset root directory")
	cmd.Flags().StringVar(&f.partition, "partition", "train", "train or test")
	cmd.Flags().StringVar(&f.target, "target", "", "target column")
	cmd.Flags().StringVar(&f.attr, "attr", "", "sensitive attribute column")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "label threshold (lfw)")
	cmd.Flags().StringVar(&f.cacheDB, "cache-db", "", "sqlite annotation cache")
	_ = cmd.MarkFlagRequired("root")
}

type annotatedDataset interface {
	dataset.Dataset
	Filepaths() []string
	Targets() [][]float32
	MajorityIdxs() []int
	MinorityIdxs() []int
	ApplyAlpha(alpha float64, nTrain int) error
}

func (f *datasetFlags) open() (annotatedDataset, error) {
	switch f.data {
	case "imdbwiki":
		return imdbwiki.New(imdbwiki.Config{
			Root:      f.root,
			Train:     f.partition == "train",
			Normalize: true,
			TargetCol: f.target,
			AttrCol:   f.attr,
			CacheDB:   f.cacheDB,
		})
	case "lfw":
		return lfw.New(lfw.Config{
			Root:      f.root,
			Partition: f.partition,
			TargetCol: f.target,
			AttrCol:   f.attr,
			Threshold: f.threshold,
			Normalize: true,
			CacheDB:   f.cacheDB,
		})
	}
	return nil, zorros.Errorf("unknown dataset `%v`", f.data)
}

func init() {
	flags := &datasetFlags{}
	var alpha float64
	var nTrain int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "print dataset length and group sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.open()
			if err != nil {
				return err
			}
			fmt.Printf("%v %v: %d items\n", flags.data, flags.partition, d.Len())
			fmt.Printf("majority group: %d items\n", len(d.MajorityIdxs()))
			fmt.Printf("minority group: %d items\n", len(d.MinorityIdxs()))
			targets := make([]float32, d.Len())
			for i, row := range d.Targets() {
				targets[i] = row[0]
			}
			fmt.Printf("mean target: %.4f\n", fu.Mean(targets))
			if alpha > 0 {
				if err = d.ApplyAlpha(alpha, nTrain); err != nil {
					return err
				}
				minFrac := float64(len(d.MinorityIdxs())) / float64(d.Len())
				fmt.Printf("after alpha=%v n=%d: %d items, minority fraction %.4f\n",
					alpha, nTrain, d.Len(), minFrac)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "majority mixing ratio")
	cmd.Flags().IntVar(&nTrain, "n-train", 0, "fixed training set size for alpha")
	rootCmd.AddCommand(cmd)
}
