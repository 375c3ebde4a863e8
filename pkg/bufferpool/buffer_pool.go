package bufferpool

import (
	"bytes"
	"sync"
)

// maxPooledSize caps the buffers returned to the pool. Compiled stylesheets with inlined
// sourcemaps can get large and we don't want to pin that memory.
const maxPooledSize = 4 << 20

var bytesBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(nil)
	},
}

func GetBytesBuffer() *bytes.Buffer {
	//nolint:errcheck // Pool contains one type.
	buf := bytesBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func PutBytesBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	bytesBufferPool.Put(buf)
}

func PutBytesBuffers(buf ...*bytes.Buffer) {
	for i := range buf {
		PutBytesBuffer(buf[i])
	}
}
