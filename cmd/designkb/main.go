// designkb searches curated UI/UX design knowledge with BM25 ranking.
package main

import (
	"os"

	"github.com/kailas-cloud/designkb/cmd/designkb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
