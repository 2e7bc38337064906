package content

// SegmentKind distinguishes prose from code in a segmented reply.
type SegmentKind int

const (
	// KindText marks explanatory prose meant for word-wrap chunking.
	KindText SegmentKind = iota

	// KindCode marks code meant for line-preserving rendering.
	KindCode
)

// String returns the kind as a short label for logs.
func (k SegmentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Segment is one ordered piece of a model reply after splitting on the
// code marker.
type Segment struct {
	// Kind identifies how the segment should be rendered.
	Kind SegmentKind

	// Text is the segment content with surrounding whitespace trimmed.
	Text string
}
