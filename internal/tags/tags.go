// Package tags reads country tag declarations from a countries.txt style file.
package tags

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrInvalidEncoding = errors.New("tag file is not valid UTF-8")

// maxLineLength bounds a single line; declarations are short but comment
// lines are not.
const maxLineLength = 16 << 20

var (
	declPattern = regexp.MustCompile(`^([A-Z0-9]{1,3})[\s\p{Z}\x{85}]*=`)
	tagPattern  = regexp.MustCompile(`^[A-Z0-9]{1,3}$`)
)

// ValidTag reports whether tag has the shape of a country tag.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// ReadFile returns the tags declared in path in file order. A file that
// cannot be read yields an error; a readable file without declarations
// yields an empty slice and no error.
func ReadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading tags file: %w", err)
	}
	defer file.Close()

	tags, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading tags file %s: %w", path, err)
	}
	return tags, nil
}

// Parse scans r line by line. Lines end at \n, \r\n or a lone \r.
// Duplicates are kept.
func Parse(r io.Reader) ([]string, error) {
	tags := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanLines)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if lineNo == 1 {
			raw = trimBOM(raw)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding)
		}

		if tag, ok := ParseLine(string(raw)); ok {
			tags = append(tags, tag)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		return nil, err
	}
	return tags, nil
}

// ParseLine extracts the tag from a single declaration line such as
// "USA = countries/USA.txt". Comments and blank lines report false.
func ParseLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	match := declPattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		// \r at the end of the buffer; need the next byte to tell \r\n apart.
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func trimBOM(line []byte) []byte {
	const bom = "\ufeff"
	if len(line) >= len(bom) && string(line[:len(bom)]) == bom {
		return line[len(bom):]
	}
	return line
}
