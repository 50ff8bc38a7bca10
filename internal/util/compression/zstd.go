package compression

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func newZstd(w io.Writer, level int) io.Writer {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil
	}
	return enc
}
