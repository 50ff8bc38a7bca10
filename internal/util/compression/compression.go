// Package compression provides the response encoders the server registers
// with its compression middleware.
package compression

import "io"

// DefaultLevel is the flate-style level used for responses.
const DefaultLevel = 5

// Encoder pairs a Content-Encoding token with a streaming writer
// constructor. New returns nil when the level is out of range.
type Encoder struct {
	Encoding string
	New      func(w io.Writer, level int) io.Writer
}

// Supported lists the encoders from least to most preferred.
var Supported = []Encoder{
	{Encoding: "deflate", New: newDeflate},
	{Encoding: "gzip", New: newGzip},
	{Encoding: "zstd", New: newZstd},
}
