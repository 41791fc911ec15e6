package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"record-composer/protocol"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [category...]",
	Short: "Print operator categories and their operation expansions",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cats := protocol.Categories()

	if len(args) > 0 {
		cats = cats[:0]

		for _, arg := range args {
			if !protocol.IsCategory(arg) {
				return fmt.Errorf("unknown category %q", arg)
			}

			cats = append(cats, protocol.Category(arg))
		}
	}

	bold := color.New(color.Bold)

	for _, cat := range cats {
		names, _ := protocol.Expand(cat)
		bold.Printf("%-6s", string(cat))
		fmt.Printf(" -> %s\n", strings.Join(names, ", "))
	}

	return nil
}
