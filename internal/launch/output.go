package launch

import (
	"bytes"
	"log/slog"
)

// maxLineSize bounds a single trainer log line; progress bars and dataset
// dumps can get long.
const maxLineSize = 1024 * 1024

// lineWriter turns a worker's raw output stream into per-line structured
// log records, tagged with the run, rank, and stream they came from. It is
// handed to os/exec as the worker's Stdout/Stderr so the exec package owns
// the pipe lifecycle and Wait's close deadline stays effective.
type lineWriter struct {
	logger  *slog.Logger
	runName string
	rank    int
	stream  string
	buf     []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	// A line that never ends must not buffer without bound; flush it in
	// maxLineSize chunks.
	for len(w.buf) >= maxLineSize {
		w.emit(w.buf[:maxLineSize])
		w.buf = w.buf[maxLineSize:]
	}
	return len(p), nil
}

// flush logs whatever remains after the stream ends without a trailing
// newline.
func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *lineWriter) emit(line []byte) {
	w.logger.Info(string(line), "run", w.runName, "rank", w.rank, "stream", w.stream)
}
