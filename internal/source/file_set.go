package source

import (
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
)

// StdinPath is the pseudo path that makes Load read from standard input.
const StdinPath = "-"

// FileSet owns every source loaded during one invocation.
// Re-adding a path appends a new version; ids are never reused.
type FileSet struct {
	files  []File
	byPath map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// Add registers content that is already normalized.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source: %s is too large: %w", path, err))
	}
	f := File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	fs.byPath[f.Path] = f.ID
	return f.ID
}

// AddVirtual registers an in-memory buffer (tests, fuzzing).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path, or stdin for "-", drops a UTF-8 BOM and folds CRLF.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, flags, err := readSource(path)
	if err != nil {
		return 0, err
	}
	var stripped, folded bool
	content, stripped = removeBOM(content)
	content, folded = normalizeCRLF(content)
	if stripped {
		flags |= FileHadBOM
	}
	if folded {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

func readSource(path string) ([]byte, FileFlags, error) {
	if path == StdinPath {
		b, err := io.ReadAll(os.Stdin)
		return b, FileVirtual, err
	}
	b, err := os.ReadFile(path) // #nosec G304 -- user-supplied input file
	return b, 0, err
}

// Get panics on an id from another set.
func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// GetLatest returns the newest version registered for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.byPath[normalizePath(path)]
	return id, ok
}

// Resolve maps both ends of span to 1-based line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// GetLine returns 1-based line n without its '\n', or "" past the end.
func (f *File) GetLine(n uint32) string {
	lo, hi, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[lo:hi])
}

func (f *File) lineBounds(n uint32) (lo, hi int, ok bool) {
	if n == 0 || int64(n) > int64(len(f.LineIdx))+1 {
		return 0, 0, false
	}
	i := int(n) - 1
	if i > 0 {
		lo = int(f.LineIdx[i-1]) + 1
	}
	hi = len(f.Content)
	if i < len(f.LineIdx) {
		hi = int(f.LineIdx[i])
	}
	return lo, hi, lo <= hi
}
