package encoding

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, data []byte) string {
	t.Helper()
	r, err := NewUTF8Reader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewUTF8ReaderPassthrough(t *testing.T) {
	in := "Data;Descrição;Valor\n05/01/2024;Padaria São João;12,00\n"
	assert.Equal(t, in, readAll(t, []byte(in)))
}

func TestNewUTF8ReaderStripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Data;Valor\n")...)
	assert.Equal(t, "Data;Valor\n", readAll(t, in))
}

func TestNewUTF8ReaderUTF16LE(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})
	for _, r := range "Data\n" {
		buf.WriteByte(byte(r))
		buf.WriteByte(0)
	}
	assert.Equal(t, "Data\n", readAll(t, buf.Bytes()))
}

func TestNewUTF8ReaderLegacySingleByte(t *testing.T) {
	// "Descrição" with ç (0xE7) and ã (0xE3): invalid as UTF-8, decodes the
	// same under ISO-8859-1 and Windows-1252.
	in := []byte("Descri\xe7\xe3o;Valor\n")
	out := readAll(t, in)
	assert.True(t, strings.HasPrefix(out, "Descrição"), "got %q", out)
}

func TestNewUTF8ReaderEmptyInput(t *testing.T) {
	assert.Equal(t, "", readAll(t, nil))
}
