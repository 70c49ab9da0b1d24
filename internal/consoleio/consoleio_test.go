package consoleio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectLineReader_ReadLine_SkipsBlankLinesByDefault(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\n\n  \nhello\n"))
	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
}

func TestDirectLineReader_ReadLine_AllowsBlankWhenSet(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\nhello\n"))
	r.AllowBlank(true)
	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestDirectLineReader_ReadLine_ReturnsEOFAtEnd(t *testing.T) {
	r := NewDirectReader(strings.NewReader("only\n"))
	_, err := r.ReadLine()
	require.NoError(t, err)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}
