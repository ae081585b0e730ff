package preview

import (
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

const truncatedMarker = "\n… (truncated)"

// ReadText reads path as UTF-8. Invalid byte sequences become U+FFFD and a
// leading byte order mark is dropped. When limit > 0 at most limit bytes are
// read, cut back to the last whole character, and a marker is appended if
// the file is longer.
func ReadText(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", pkgerrors.NewIOError("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", pkgerrors.NewIOError("read", path, err)
	}

	truncated := limit > 0 && int64(len(raw)) > limit
	if truncated {
		raw = trimPartialRune(raw[:limit])
	}

	text, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", pkgerrors.NewIOError("decode", path, err)
	}
	if truncated {
		return string(text) + truncatedMarker, nil
	}
	return string(text), nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			return b
		}
	}
	return b
}
