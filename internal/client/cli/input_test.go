package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  alice  \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	t.Run("ok", func(t *testing.T) {
		readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
		var out bytes.Buffer
		pw, err := GetPassword(&out)
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), pw)
		assert.Equal(t, "Enter password: \n", out.String())
	})

	t.Run("terminal error", func(t *testing.T) {
		readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
		_, err := GetPassword(io.Discard)
		assert.EqualError(t, err, "boom")
	})

	t.Run("empty", func(t *testing.T) {
		readPassword = func(int) ([]byte, error) { return []byte{}, nil }
		_, err := GetPassword(io.Discard)
		assert.ErrorIs(t, err, errEmptyPassword)
	})
}
