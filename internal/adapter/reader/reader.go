package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType marks a file whose extension has no registered reader.
// Discovery does not filter by content; the rejection happens here.
var ErrUnsupportedType = errors.New("unsupported file type")

// Reader extracts plain text from document files, dispatching on extension.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read returns the text content of the file at path.
func (r *Reader) Read(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return readPlainText(path)
	case ".md", ".markdown":
		return readPlainText(path)
	case ".pdf":
		return readPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
