// Package encoding normalizes the byte encoding of imported backup files.
// Backups written by this app are plain UTF-8, but files that passed
// through Windows editors or mail clients show up with BOMs, UTF-16, or
// legacy single-byte encodings.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sniffLen is how much of the input the detector looks at. Enough for a
// BOM and for chardet to have usable statistics.
const sniffLen = 4096

// NewUTF8Reader wraps r so that the content read from it is valid UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM stripped; UTF-16 LE/BE decoded)
//  2. Content already valid UTF-8 passes through unchanged
//  3. chardet heuristic
//  4. Windows-1252 fallback
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1", "windows-1252":
			return decode(br, charmap.Windows1252), nil
		case "ISO-8859-15":
			return decode(br, charmap.ISO8859_15), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

func decode(r io.Reader, enc xencoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
