// Package chunk splits model output into transport-sized lines.
//
// IRC delivers messages as single lines inside a 512-byte frame, so a
// multi-paragraph completion has to be re-flowed into a sequence of
// short lines before it can be sent. This package implements that
// re-flow as one pure function, Split, with three guarantees:
//
//   - Greedy word packing: words fill each line up to the byte limit,
//     and a word that would overflow starts the next line.
//   - Nothing is lost: a word longer than the limit is hard-split at
//     rune boundaries, never truncated or dropped.
//   - Author line breaks survive: a newline in the input always forces
//     a line break in the output.
//
// # Usage
//
//	lines := chunk.Split(reply, budget)
//	for _, line := range lines {
//		conn.Privmsg(target, prefix+line)
//	}
//
// The budget is computed by the caller from the configured maximum
// line length minus the reply prefix and a safety margin.
//
// # Thread Safety
//
// Split is a pure function with no shared state and is safe for
// concurrent use.
package chunk
