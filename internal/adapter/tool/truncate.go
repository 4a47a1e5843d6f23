package tool

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// TruncationResult reports a head truncation: the kept prefix plus exact
// line/byte accounting for both the output and the original text, so a
// caller can render a "showing X of Y" footer without re-splitting.
type TruncationResult struct {
	Content     string
	Truncated   bool
	OutputLines int
	TotalLines  int
	OutputBytes int
	TotalBytes  int
}

// TruncateHead returns a prefix of text satisfying both maxLines and
// maxBytes simultaneously; the more restrictive bound wins. Bytes are
// counted in the encoded form, so multi-byte characters count as their
// encoded length. The byte cut never splits a line: the result is always a
// prefix of whole lines, possibly empty when even the first line exceeds
// the byte budget.
func TruncateHead(text string, maxLines, maxBytes int) TruncationResult {
	lines := strings.Split(text, "\n")
	totalLines := len(lines)
	totalBytes := len(text)

	keep := 0
	byteLen := 0
	for i, line := range lines {
		if i >= maxLines {
			break
		}
		add := len(line)
		if i > 0 {
			add++ // joining newline
		}
		if byteLen+add > maxBytes {
			break
		}
		byteLen += add
		keep++
	}

	content := strings.Join(lines[:keep], "\n")
	return TruncationResult{
		Content:     content,
		Truncated:   keep < totalLines || len(content) < totalBytes,
		OutputLines: keep,
		TotalLines:  totalLines,
		OutputBytes: len(content),
		TotalBytes:  totalBytes,
	}
}

// Footer renders the standard truncation footer, e.g.
// "[Truncated: showing 1000 of 2481 lines (98 kB of 310 kB)]".
func (r TruncationResult) Footer() string {
	return "[Truncated: showing " +
		formatCount(r.OutputLines, r.TotalLines, "lines") +
		" (" + humanize.Bytes(uint64(r.OutputBytes)) + " of " + humanize.Bytes(uint64(r.TotalBytes)) + ")]"
}

func formatCount(out, total int, unit string) string {
	return humanize.Comma(int64(out)) + " of " + humanize.Comma(int64(total)) + " " + unit
}
