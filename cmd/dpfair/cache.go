package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpgard/differential-privacy-vs-fairness/annodb"
)

func init() {
	flags := &datasetFlags{}
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "prebuild the sqlite annotation cache for a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.cacheDB == "" {
				flags.cacheDB = annodb.DefaultPath()
			}
			d, err := flags.open()
			if err != nil {
				return err
			}
			fmt.Printf("cached %d %v %v annotation rows in %v\n",
				d.Len(), flags.data, flags.partition, flags.cacheDB)
			return nil
		},
	}
	flags.register(cmd)
	rootCmd.AddCommand(cmd)
}
