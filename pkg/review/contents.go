package review

import (
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ReadFileFunc reads a file by path
type ReadFileFunc func(path string) ([]byte, error)

// LoadContents reads every changed file. Paths that do not exist are left out
// of the result. Files that exist but cannot be read map to an inline error
// placeholder, and their errors are returned together.
func LoadContents(files []string, readFile ReadFileFunc) (map[string]string, error) {
	if readFile == nil {
		readFile = os.ReadFile
	}

	contents := make(map[string]string, len(files))
	var result *multierror.Error

	for _, path := range files {
		data, err := readFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			contents[path] = readErrorPlaceholder(err)
			result = multierror.Append(result, errors.Wrapf(err, "failed to read %s", path))
		case !utf8.Valid(data):
			err := errors.New("content is not valid UTF-8")
			contents[path] = readErrorPlaceholder(err)
			result = multierror.Append(result, errors.Wrapf(err, "failed to read %s", path))
		default:
			contents[path] = string(data)
		}
	}

	return contents, result.ErrorOrNil()
}

func readErrorPlaceholder(err error) string {
	return "[Error reading file: " + err.Error() + "]"
}

// WriteResult writes the review text verbatim to path
func WriteResult(path, review string) error {
	if err := os.WriteFile(path, []byte(review), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write review to %s", path)
	}
	return nil
}
