package encoding

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Survey exports arrive in one of three encodings depending on which tool
// produced them: UTF-8 with BOM (Excel CSV export), plain UTF-8, or
// CP949/EUC-KR (legacy HR systems).
type Charset string

const (
	CharsetUTF8    Charset = "utf-8"
	CharsetUTF8BOM Charset = "utf-8-sig"
	CharsetCP949   Charset = "cp949"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect sniffs the charset of raw file contents. A BOM wins outright;
// otherwise valid UTF-8 is assumed to be UTF-8 and anything else CP949.
func Detect(data []byte) Charset {
	if bytes.HasPrefix(data, utf8BOM) {
		return CharsetUTF8BOM
	}
	if utf8.Valid(data) {
		return CharsetUTF8
	}
	return CharsetCP949
}

// DecodeToUTF8 converts raw file contents to plain UTF-8, stripping any BOM.
func DecodeToUTF8(data []byte) ([]byte, Charset, error) {
	charset := Detect(data)

	switch charset {
	case CharsetUTF8BOM:
		return bytes.TrimPrefix(data, utf8BOM), charset, nil
	case CharsetUTF8:
		return data, charset, nil
	case CharsetCP949:
		decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
		if err != nil {
			return nil, charset, fmt.Errorf("cp949 decode failed: %w", err)
		}
		return decoded, charset, nil
	}

	return nil, charset, fmt.Errorf("unsupported charset: %s", charset)
}

// EncodeCP949 converts UTF-8 contents to CP949 for legacy spreadsheet
// consumers. Characters outside the CP949 repertoire are an error rather
// than silently replaced.
func EncodeCP949(data []byte) ([]byte, error) {
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), data)
	if err != nil {
		return nil, fmt.Errorf("cp949 encode failed: %w", err)
	}
	return encoded, nil
}

// ReadFileUTF8 reads a file and returns its contents decoded to UTF-8.
func ReadFileUTF8(path string) ([]byte, Charset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeToUTF8(data)
}
