package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go-ml.dev/pkg/zorros"

	"github.com/jpgard/differential-privacy-vs-fairness/dataset"
	"github.com/jpgard/differential-privacy-vs-fairness/transform"
)

func imageFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to scan `%v`: %v", dir, err)
	}
	if len(files) == 0 {
		return nil, zorros.Errorf("no images found in `%v`", dir)
	}
	return files, nil
}

func init() {
	var dir string
	cmd := &cobra.Command{
		Use:   "normstats",
		Short: "compute per-channel mean/std over a directory of images",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := imageFiles(dir)
			if err != nil {
				return err
			}
			var stats transform.Stats
			pbar := progressbar.Default(int64(len(files)), "images")
			for _, f := range files {
				img, err := dataset.DefaultLoader(f)
				if err != nil {
					return err
				}
				stats.Add(img)
				_ = pbar.Add(1)
			}
			mean, std, err := stats.Channels()
			if err != nil {
				return err
			}
			fmt.Printf("mean: %.6f %.6f %.6f\n", mean[0], mean[1], mean[2])
			fmt.Printf("std:  %.6f %.6f %.6f\n", std[0], std[1], std[2])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of images")
	_ = cmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(cmd)
}
