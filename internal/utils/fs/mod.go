package fs

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SourceExtension is the conventional extension of program files.
const SourceExtension = ".plc"

// IsValidFile reports whether filename exists and is a regular file.
func IsValidFile(filename string) bool {
	fileInfo, err := os.Stat(filename)
	return err == nil && fileInfo.Mode().IsRegular()
}

func IsDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.Mode().IsDir()
}

// LastPart returns the final path element without its extension. Both slash
// styles are accepted.
func LastPart(path string) string {
	normalized := strings.Trim(strings.ReplaceAll(path, "\\", "/"), "/")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "/")
	last := parts[len(parts)-1]
	return strings.TrimSuffix(last, filepath.Ext(last))
}

// ClassName derives a Java class name from a source path: invalid identifier
// characters become underscores and the first letter is upper-cased. It
// returns fallback when nothing usable remains.
func ClassName(path, fallback string) string {
	base := LastPart(path)
	var b strings.Builder
	for i, r := range base {
		switch {
		case unicode.IsLetter(r) || r == '_' || r == '$':
			if b.Len() == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if strings.Trim(name, "_") == "" {
		return fallback
	}
	return name
}

// JavaOutputPath is where the generated class for className is written when
// dir is the output directory.
func JavaOutputPath(dir, className string) string {
	return filepath.Join(dir, className+".java")
}
