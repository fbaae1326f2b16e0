package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile reads a .csv or .xlsx export. sheet applies to workbooks only.
func ReadFile(path, sheet string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		t, err := ReadXLSX(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	case ".csv", ".txt", "":
		t, err := ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%s: unsupported file type %q", path, ext)
	}
}
