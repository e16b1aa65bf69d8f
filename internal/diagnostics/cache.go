package diagnostics

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Chris-Enlow/PLC-Project/internal/source"
)

// DefaultCacheSize bounds how many files a SourceCache keeps split into lines.
const DefaultCacheSize = 64

// SourceCache holds source lines for snippet rendering. Files not added
// explicitly are read from disk on first use.
type SourceCache struct {
	files *lru.Cache
}

func NewSourceCache() *SourceCache {
	return NewSourceCacheSize(DefaultCacheSize)
}

func NewSourceCacheSize(size int) *SourceCache {
	files, err := lru.New(size)
	if err != nil {
		// only reachable with a non-positive size
		files, _ = lru.New(DefaultCacheSize)
	}
	return &SourceCache{files: files}
}

// AddSource registers in-memory content for filepath.
func (sc *SourceCache) AddSource(filepath, content string) {
	sc.files.Add(filepath, source.Lines(content))
}

// GetLine returns the 1-based line of filepath.
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	lines, err := sc.lines(filepath)
	if err != nil {
		return "", err
	}
	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

func (sc *SourceCache) lines(filepath string) ([]string, error) {
	if cached, ok := sc.files.Get(filepath); ok {
		return cached.([]string), nil
	}
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	lines := source.Lines(string(data))
	sc.files.Add(filepath, lines)
	return lines, nil
}
