// pricebook/parsers/parser_utils.go
package parsers

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// SkipBOM skips a UTF-8 BOM if present.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// DecodeVendorText returns a UTF-8 reader over a vendor export. The
// distributor's back office emits Windows-1252; re-saved files arrive as
// UTF-8 with or without a BOM.
func DecodeVendorText(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(SkipBOM(r))
	if err != nil {
		return nil, err
	}
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}
	return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()), nil
}
