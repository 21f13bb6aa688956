package document

import (
	"strings"
)

// Line is a single raw body line with its 1-based position.
type Line struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Document is one parsed content file.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Lines       []Line
}

// New builds a document from pre-split body lines, numbered from 1.
func New(path string, lines []string) *Document {
	return &Document{
		Path:  path,
		Lines: numberLines(lines, 0),
	}
}

// Parse splits content into front matter and body. Body lines are numbered
// by their position in the original file, including the front-matter offset.
// A front-matter decode failure returns the document (front matter empty)
// together with the error so callers may log it and still lint the body.
func Parse(path string, content []byte) (*Document, error) {
	lines := splitLines(content)
	doc := &Document{Path: path}

	body := lines
	offset := 0
	if len(lines) > 0 && isFence(lines[0]) {
		if end := closingFence(lines); end > 0 {
			fm, err := decodeFrontMatter(lines[1:end])
			doc.FrontMatter = fm
			body = lines[end+1:]
			offset = end + 1
			if err != nil {
				doc.Lines = numberLines(body, offset)
				return doc, err
			}
		}
	}

	doc.Lines = numberLines(body, offset)
	return doc, nil
}

// splitLines splits on newlines and strips any carriage returns so CRLF
// files classify the same as LF files.
func splitLines(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isFence(line string) bool {
	return strings.TrimRight(line, " \t") == "---"
}

// closingFence returns the index of the fence that closes a front-matter
// block opened on line 0, or -1 if the block never closes.
func closingFence(lines []string) int {
	for i := 1; i < len(lines); i++ {
		if isFence(lines[i]) {
			return i
		}
	}
	return -1
}

func numberLines(lines []string, offset int) []Line {
	out := make([]Line, 0, len(lines))
	for i, text := range lines {
		out = append(out, Line{Number: offset + i + 1, Text: text})
	}
	return out
}
