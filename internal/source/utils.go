package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

var (
	crlf    = []byte("\r\n")
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// normalizeCRLF folds "\r\n" into "\n"; a lone '\r' stays as is.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

func removeBOM(content []byte) ([]byte, bool) {
	rest, ok := bytes.CutPrefix(content, utf8BOM)
	return rest, ok
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // #nosec G115 -- Add rejects content over 4GiB
		off++
	}
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of newlines strictly before off
	line, _ := slices.BinarySearch(lineIdx, off)
	var start uint32
	if line > 0 {
		start = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - start + 1} // #nosec G115
}

func normalizePath(p string) string {
	if p == StdinPath {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
