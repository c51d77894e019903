package port

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	RelPath string
	ModTime int64
	Size    int64
}

type FileReader interface {
	ReadFile(path string) (string, error)
}

// FileWriter persists generated output. Implementations must not leave a
// partial file behind when the write fails.
type FileWriter interface {
	WriteFile(path string, content string) error
	Remove(path string) error
	Exists(path string) bool
}
