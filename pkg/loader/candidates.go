package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCandidateFile is the candidate list read on a first run.
const DefaultCandidateFile = "candidates.txt"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, utf8BOM)
}

// ParseCandidateNames reads one candidate name per line. Trailing CR and
// surrounding whitespace are dropped and blank lines skipped.
func ParseCandidateNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if lineNum == 1 {
			line = stripBOM(line)
		}
		name := strings.TrimSpace(string(line))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading candidate list at line %d: %w", lineNum, err)
	}
	return names, nil
}

// LoadCandidateNames reads the candidate list file at path.
func LoadCandidateNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCandidateNames(f)
}

// SaveCandidateNames writes names one per line, without a trailing newline.
func SaveCandidateNames(path string, names []string) error {
	return writeFileAtomic(path, []byte(strings.Join(names, "\n")))
}

// writeFileAtomic replaces path via a temp file and rename so readers and
// watchers never observe a partially written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
