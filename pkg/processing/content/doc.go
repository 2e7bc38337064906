// Package content cleans and structures model output before delivery.
//
// Replies arrive as free-form markdown-flavored text. This package
// applies two transformations:
//
//   - Sanitizer strips the markdown artifacts models emit despite
//     plain-text instructions: code fences with optional language
//     tags, inline backticks, and runs of blank lines.
//   - Segmenter splits replies from the code prompt template on its
//     CODE: marker into ordered prose and code segments, and renders
//     code segments as compact pipe-joined lines.
//
// # Usage
//
//	san := content.NewSanitizer()
//	seg := content.NewSegmenter(4)
//
//	clean := san.Sanitize(reply)
//	for _, s := range seg.Segment(clean) {
//		switch s.Kind {
//		case content.KindText:
//			// word-wrap via chunk.Split
//		case content.KindCode:
//			lines := seg.RenderCode(s.Text)
//		}
//	}
//
// # Thread Safety
//
// Sanitizer and Segmenter hold only compiled patterns and constants
// and are safe for concurrent use.
package content
