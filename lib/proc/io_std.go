package proc

import (
	"io"
	"sync"
)

const tailSize = 2048

// Writer forwards tool output and remembers the last tailSize bytes for
// error messages.
type Writer struct {
	io.Writer

	mu   sync.Mutex
	tail []byte
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.tail = append(w.tail, p...)
	if over := len(w.tail) - tailSize; over > 0 {
		w.tail = append(w.tail[:0], w.tail[over:]...)
	}
	w.mu.Unlock()
	return w.Writer.Write(p)
}

func (w *Writer) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.tail)
}
