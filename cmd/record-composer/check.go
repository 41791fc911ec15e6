package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"record-composer/internal/diagnostic"
	"record-composer/internal/record"
)

var checkCmd = &cobra.Command{
	Use:   "check <declaration.yaml> [more...]",
	Short: "Validate declaration files without generating anything",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := 0

	for _, path := range args {
		f, err := record.LoadFile(path)
		if err != nil {
			color.Red("%s: %v", path, err)

			failed++

			continue
		}

		diags := record.Validate(f)
		diagnostic.Render(os.Stderr, diags)
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, diagnostic.Summary(diags))

		if diags.HasErrors() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d declaration files failed validation", failed, len(args))
	}

	return nil
}
