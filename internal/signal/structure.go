package signal

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/agentscope/agentscope/internal/scan"
)

// StructureResult is the structure collector's facet of the snapshot.
type StructureResult struct {
	FileCount int
	LineCount int
}

// CollectStructure counts files and readable text lines. Line counts stream
// through a fixed-size buffer so arbitrarily large files never load fully into
// memory. A file that cannot be opened or is not text still counts toward
// FileCount; only its lines are skipped.
func CollectStructure(root string, entries []scan.Entry) StructureResult {
	res := StructureResult{}
	for _, e := range entries {
		res.FileCount++
		if lines, ok := countLines(filepath.Join(root, filepath.FromSlash(e.Path))); ok {
			res.LineCount += lines
		}
	}
	return res
}

// countLines streams a file counting newline-terminated lines plus a trailing
// unterminated one. Returns ok=false for unreadable or binary content.
func countLines(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	lines := 0
	first := true
	var lastByte byte
	sawAny := false

	for {
		n, err := f.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if first {
				if bytes.IndexByte(chunk, 0) >= 0 {
					return 0, false
				}
				first = false
			}
			lines += bytes.Count(chunk, []byte{'\n'})
			lastByte = chunk[n-1]
			sawAny = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, false
		}
	}

	if sawAny && lastByte != '\n' {
		lines++
	}
	return lines, true
}
