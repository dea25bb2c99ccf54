package exec

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/jmgilman/go/gscript/errors"
)

// LookupEncoding resolves a text encoding name such as "utf-8", "latin1"
// or "cp1252". The empty name and "default" mean UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}

	return nil, errors.WithContext(
		errors.Newf(errors.CodeUnknownEncoding, "unknown text encoding %q", name),
		"encoding", name,
	)
}

func decode(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeDecodeFailed, "failed to decode process output")
	}
	return string(out), nil
}

func encode(enc encoding.Encoding, s string) ([]byte, error) {
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDecodeFailed, "failed to encode process input")
	}
	return out, nil
}
