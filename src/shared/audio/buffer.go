package audio

import (
	"io"

	"github.com/cockroachdb/errors"
)

// writeSeekBuffer is an in memory io.WriteSeeker. The WAV encoder
// seeks backwards to patch chunk sizes, so bytes.Buffer won't do.
type writeSeekBuffer struct {
	data []byte
	pos  int
}

func newWriteSeekBuffer() *writeSeekBuffer {
	return &writeSeekBuffer{}
}

func (b *writeSeekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}

	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(b.pos) + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, errors.Errorf("Invalid seek whence %d", whence)
	}

	if next < 0 {
		return 0, errors.New("Cannot seek before start of buffer")
	}

	b.pos = int(next)
	return next, nil
}

func (b *writeSeekBuffer) Bytes() []byte {
	return b.data
}
