package gen

import (
	"go/format"
	"os"
	"path/filepath"

	"record-composer/internal/errors"
	"record-composer/internal/logging"
)

// formatSource runs gofmt over rendered source.
func formatSource(src []byte) ([]byte, error) {
	formatted, err := format.Source(src)
	if err != nil {
		return nil, errors.Wrap(err, "format source")
	}

	return formatted, nil
}

// WriteFiles writes generated files into dir, creating it if needed. A
// file that failed to format is written with a .debug suffix instead so
// the broken render can be inspected.
func WriteFiles(dir string, files []GeneratedFile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output dir %s", dir)
	}

	for _, f := range files {
		name, src := f.Name, f.Source

		if src == nil {
			name, src = f.Name+".debug", f.Unformatted
			logging.Warnw("writing unformatted debug output", "file", name)
		}

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}

		logging.Infow("wrote generated file", "path", path, "bytes", len(src))
	}

	return nil
}
