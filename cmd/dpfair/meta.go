package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpgard/differential-privacy-vs-fairness/imdbwiki"
)

func init() {
	var mat, out string
	cmd := &cobra.Command{
		Use:   "imdb-meta",
		Short: "build meta.csv from upstream .mat annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := imdbwiki.BuildMeta(mat, out)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %d rows to %v\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&mat, "mat", "", "imdb.mat or wiki.mat annotation file")
	cmd.Flags().StringVar(&out, "out", "meta.csv", "output meta.csv path")
	_ = cmd.MarkFlagRequired("mat")
	rootCmd.AddCommand(cmd)
}
