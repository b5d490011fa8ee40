package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// htmlPattern selects candidate file names
const htmlPattern = "*.html"

// sniffSize is how much of a file is inspected to recognize the bookmark format
const sniffSize = 500

var (
	doctypeMarker = []byte("<!DOCTYPE NETSCAPE-BOOKMARK-FILE-1>")
	metaMarker    = []byte(`<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">`)
)

var (
	// ErrNoHTML is returned when the directory holds no .html files at all
	ErrNoHTML = errors.New("no HTML files found")
	// ErrNoInput is returned when none of the HTML files is a Netscape bookmark file
	ErrNoInput = errors.New("no Netscape bookmark file found")
	// ErrAmbiguousInput is matched by *AmbiguousError
	ErrAmbiguousInput = errors.New("more than one bookmark file found")
)

// AmbiguousError lists the candidates when more than one bookmark file is present
type AmbiguousError struct {
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = filepath.Base(c)
	}
	return fmt.Sprintf("%d bookmark files found (%s); keep only one and retry",
		len(e.Candidates), strings.Join(names, ", "))
}

// Is reports ErrAmbiguousInput as the matching sentinel
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguousInput
}

// IsBookmarksFile reports whether the head of the file looks like a Netscape
// bookmark export. Unreadable files are not bookmark files.
func IsBookmarksFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	head = head[:n]

	return bytes.Contains(bytes.ToUpper(head), doctypeMarker) || bytes.Contains(head, metaMarker)
}

// Candidates returns the .html files in dir that are bookmark files, sorted by name.
// Only file names are matched against the pattern, dir is taken literally.
func Candidates(dir string) (htmlFiles, bookmarkFiles []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(htmlPattern, entry.Name()); !ok {
			continue
		}
		htmlFiles = append(htmlFiles, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(htmlFiles)

	for _, path := range htmlFiles {
		if IsBookmarksFile(path) {
			bookmarkFiles = append(bookmarkFiles, path)
		}
	}
	return htmlFiles, bookmarkFiles, nil
}

// Find returns the single bookmark file in dir
func Find(dir string) (string, error) {
	htmlFiles, bookmarkFiles, err := Candidates(dir)
	if err != nil {
		return "", err
	}

	switch {
	case len(htmlFiles) == 0:
		return "", fmt.Errorf("%w in %s", ErrNoHTML, dir)
	case len(bookmarkFiles) == 0:
		return "", fmt.Errorf("%w in %s", ErrNoInput, dir)
	case len(bookmarkFiles) > 1:
		return "", &AmbiguousError{Candidates: bookmarkFiles}
	}
	return bookmarkFiles[0], nil
}

// OutputPath returns the sibling path prefix+name for an input file
func OutputPath(input, prefix string) string {
	return filepath.Join(filepath.Dir(input), prefix+filepath.Base(input))
}
