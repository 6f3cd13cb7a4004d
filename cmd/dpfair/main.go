// Command dpfair inspects and prepares the face-attribute datasets:
// dataset statistics, normalization constants, meta.csv generation and
// the annotation cache.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dpfair",
	Short:         "face-attribute dataset utilities",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dpfair:", err)
		os.Exit(1)
	}
}
