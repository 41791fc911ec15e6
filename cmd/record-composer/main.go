package main

import (
	"os"

	"record-composer/internal/logging"
)

func main() {
	defer logging.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
