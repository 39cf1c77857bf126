package port

type FileWalker interface {
	Walk(root string) ([]string, error)
}

// ContentReader extracts plain text from a document file. Unsupported
// file types are rejected here, at read time.
type ContentReader interface {
	Read(path string) (string, error)
}
