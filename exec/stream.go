package exec

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/internal/logging"
)

// StreamMode selects how piped standard streams are exchanged.
type StreamMode int

const (
	// AutoText is the default: streams carry text, and byte writes to stdin
	// fall back to decoding. See InputStream.Write.
	AutoText StreamMode = iota

	// Text streams carry text encoded with the process encoding.
	Text

	// Bytes streams carry raw bytes.
	Bytes
)

// String returns the lowercase name of the mode.
func (m StreamMode) String() string {
	switch m {
	case AutoText:
		return "auto"
	case Text:
		return "text"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("StreamMode(%d)", int(m))
	}
}

// ParseStreamMode parses "auto", "text" or "bytes". The empty string is auto.
func ParseStreamMode(s string) (StreamMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return AutoText, nil
	case "text":
		return Text, nil
	case "bytes", "binary":
		return Bytes, nil
	default:
		return AutoText, errors.WithContext(
			errors.Newf(errors.CodeInvalidInput, "unknown stream mode %q", s),
			"stream_mode", s,
		)
	}
}

// InputStream is the write end of a child's piped stdin.
type InputStream struct {
	w      io.WriteCloser
	mode   StreamMode
	enc    encoding.Encoding
	logger *logging.Logger

	closeOnce sync.Once
	closeErr  error
}

// WriteString writes text, encoded with the process encoding. It fails with
// a usage error on a Bytes stream.
func (s *InputStream) WriteString(text string) (int, error) {
	if s.mode == Bytes {
		return 0, errors.New(errors.CodeStreamProtocol, "cannot write text to a byte stream")
	}
	b, err := encode(s.enc, text)
	if err != nil {
		return 0, err
	}
	if _, err := s.w.Write(b); err != nil {
		return 0, errors.Wrap(err, errors.CodeStreamFailed, "failed to write to process stdin")
	}
	return len(text), nil
}

// Write writes raw bytes. On a Bytes stream the bytes go through unchanged
// and on a Text stream the write is rejected with a usage error.
//
// Deprecated: on an AutoText stream the bytes are decoded with the process
// encoding and written as text. Callers should either request Bytes mode or
// pass text to WriteString.
func (s *InputStream) Write(p []byte) (int, error) {
	switch s.mode {
	case Bytes:
		n, err := s.w.Write(p)
		if err != nil {
			return n, errors.Wrap(err, errors.CodeStreamFailed, "failed to write to process stdin")
		}
		return n, nil
	case Text:
		return 0, errors.New(errors.CodeStreamProtocol, "cannot write bytes to a text stream")
	}

	text, err := decode(s.enc, p)
	if err != nil {
		return 0, err
	}
	s.logger.Debug(context.Background(), "decoded byte write to implied text stdin", "bytes", len(p))
	if _, err := s.WriteString(text); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes the pipe, signalling end of input. It is safe to call more
// than once.
func (s *InputStream) Close() error {
	s.closeOnce.Do(func() {
		err := s.w.Close()
		if err != nil && !isClosedPipe(err) {
			s.closeErr = errors.Wrap(err, errors.CodeStreamFailed, "failed to close process stdin")
		}
	})
	return s.closeErr
}

// OutputStream is the read end of a child's piped stdout or stderr.
type OutputStream struct {
	r   io.ReadCloser
	enc encoding.Encoding
}

// Read reads raw bytes from the pipe.
func (s *OutputStream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Reader returns a reader that decodes the stream with the process encoding.
func (s *OutputStream) Reader() io.Reader {
	return transform.NewReader(s.r, s.enc.NewDecoder())
}

// ReadAll reads the stream to EOF.
func (s *OutputStream) ReadAll() ([]byte, error) {
	b, err := io.ReadAll(s.r)
	if err != nil {
		return b, errors.Wrap(err, errors.CodeStreamFailed, "failed to read process output")
	}
	return b, nil
}

// Text reads the stream to EOF and decodes it.
func (s *OutputStream) Text() (string, error) {
	b, err := s.ReadAll()
	if err != nil {
		return "", err
	}
	return decode(s.enc, b)
}

// Close closes the read end of the pipe.
func (s *OutputStream) Close() error {
	if err := s.r.Close(); err != nil && !isClosedPipe(err) {
		return errors.Wrap(err, errors.CodeStreamFailed, "failed to close process output")
	}
	return nil
}

func isClosedPipe(err error) bool {
	return stderrors.Is(err, os.ErrClosed) || stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, io.ErrClosedPipe)
}
