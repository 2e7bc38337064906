package content

import "strings"

// marker is the token the code prompt template instructs the model to
// place between its explanation and the code itself.
const marker = "CODE:"

// Segmenter splits replies produced by the code template into ordered
// prose and code segments and renders code segments as compact logical
// lines suitable for a single-line transport.
type Segmenter struct {
	groupSize  int
	linePrefix string
	joiner     string
}

// NewSegmenter creates a segmenter. groupSize is the number of source
// code lines packed into one rendered line; non-positive values fall
// back to 4.
func NewSegmenter(groupSize int) *Segmenter {
	if groupSize < 1 {
		groupSize = 4
	}
	return &Segmenter{
		groupSize:  groupSize,
		linePrefix: "Code: ",
		joiner:     " | ",
	}
}

// Segment splits text on the code marker. Text before the first marker
// becomes a prose segment; each span after a marker becomes a code
// segment. Replies without the marker yield a single prose segment.
// Blank spans are dropped.
func (s *Segmenter) Segment(text string) []Segment {
	parts := strings.Split(text, marker)

	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kind := KindCode
		if i == 0 {
			kind = KindText
		}
		segments = append(segments, Segment{Kind: kind, Text: part})
	}

	return segments
}

// RenderCode flattens a code segment into logical lines. Source lines
// are trimmed and blank lines dropped; groups of groupSize lines are
// joined with a pipe separator under a "Code: " prefix so indentation
// loss does not destroy line structure.
func (s *Segmenter) RenderCode(code string) []string {
	var source []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			source = append(source, line)
		}
	}
	if len(source) == 0 {
		return nil
	}

	rendered := make([]string, 0, (len(source)+s.groupSize-1)/s.groupSize)
	for start := 0; start < len(source); start += s.groupSize {
		end := start + s.groupSize
		if end > len(source) {
			end = len(source)
		}
		rendered = append(rendered, s.linePrefix+strings.Join(source[start:end], s.joiner))
	}

	return rendered
}
