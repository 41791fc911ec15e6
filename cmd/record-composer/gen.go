package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"record-composer/internal/diagnostic"
	"record-composer/internal/errors"
	"record-composer/internal/gen"
	"record-composer/internal/logging"
	"record-composer/internal/record"
	"record-composer/internal/watch"
)

var genCmd = &cobra.Command{
	Use:   "gen <declaration.yaml> [more...]",
	Short: "Generate record source files from declaration files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGen,
}

func init() {
	genCmd.Flags().StringP("output", "o", "", "output directory (overrides the declaration file's setting)")
	genCmd.Flags().StringSlice("analyze", nil, "extra package patterns to load for type markers")
	genCmd.Flags().BoolP("watch", "w", false, "regenerate whenever a declaration file changes")

	_ = viper.BindPFlag("output", genCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("analyze", genCmd.Flags().Lookup("analyze"))

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	if err := generateAll(args); err != nil {
		watching, _ := cmd.Flags().GetBool("watch")
		if !watching {
			return err
		}

		// In watch mode a broken declaration is a state to recover from,
		// not a reason to exit.
		logging.Errorw("generation failed", "error", err)
	}

	if watching, _ := cmd.Flags().GetBool("watch"); !watching {
		return nil
	}

	fw, err := watch.NewFileWatcher(args, func(changed []string) error {
		return generateAll(changed)
	})
	if err != nil {
		return err
	}

	if err := fw.Start(); err != nil {
		return err
	}
	defer fw.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	logging.Infow("shutting down")

	return nil
}

func generateAll(paths []string) error {
	g := gen.New(gen.Config{
		OutputDir: viper.GetString("output"),
		Analyze:   viper.GetStringSlice("analyze"),
	})

	for _, path := range paths {
		f, err := record.LoadFile(path)
		if err != nil {
			return err
		}

		diags := record.Validate(f)
		diagnostic.Render(os.Stderr, diags)

		if diags.HasErrors() {
			return errors.Wrapf(diags.Error(), "%s", path)
		}

		files, err := g.Generate(f)

		// Unformatted renders are written as .debug files even on failure.
		if werr := gen.WriteFiles(g.OutputDir(f), files); werr != nil && err == nil {
			err = werr
		}

		if err != nil {
			return errors.Wrapf(err, "%s", path)
		}

		logging.Infow("declaration file generated", "file", path, "records", len(files))
	}

	return nil
}
