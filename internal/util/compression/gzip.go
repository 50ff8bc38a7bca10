package compression

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

func newGzip(w io.Writer, level int) io.Writer {
	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil
	}
	return gw
}

// newDeflate writes zlib-wrapped deflate, which is what HTTP calls deflate.
func newDeflate(w io.Writer, level int) io.Writer {
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return nil
	}
	return zw
}
