// Package encoding detects the character encoding of uploaded text files
// and exposes them as UTF-8 readers. Brazilian bank CSV exports are
// frequently Windows-1252 or ISO-8859-1 rather than UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

// NewUTF8Reader wraps r in a reader that yields UTF-8 text regardless of the
// source encoding.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Content that is already valid UTF-8 passes through unchanged
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	// 1. BOM detection.
	switch {
	case bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}):
		if _, err := br.Discard(3); err != nil {
			return nil, err
		}
		return br, nil
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), nil
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), nil
	}

	// 2. Already valid UTF-8.
	if utf8.Valid(buf) {
		return br, nil
	}

	// 3. Heuristic detection.
	detector := chardet.NewTextDetector()
	if result, detectErr := detector.DetectBest(buf); detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1":
			return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), nil
		case "ISO-8859-15":
			return transform.NewReader(br, charmap.ISO8859_15.NewDecoder()), nil
		case "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		}
	}

	// 4. Windows-1252 decodes any byte sequence, so it is a safe last resort.
	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
