package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		meta core.OutputMeta
		want string
	}{
		{core.OutputMeta{Source: "fnguide", Operation: "snapshot", Param: "005930"}, "fnguide_snapshot_005930"},
		{core.OutputMeta{Source: "exchange", Operation: "world"}, "exchange_world"},
		{core.OutputMeta{Source: "yahoo", Operation: "crypto_quote", Param: "BTC-USD"}, "yahoo_crypto_quote_BTC_USD"},
		{core.OutputMeta{Source: "search", Operation: "domestic", Param: "삼성"}, "search_domestic___"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.meta))
		})
	}
}

func TestWriter_Write_Stdout(t *testing.T) {
	var buf bytes.Buffer
	w, err := New("", &buf)
	require.NoError(t, err)

	path, err := w.Write(core.OutputMeta{Source: "a", Operation: "b"}, []byte("hello\n"), ".md")

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "hello\n", buf.String())
}

func TestWriter_Write_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	var buf bytes.Buffer
	w, err := New(dir, &buf)
	require.NoError(t, err)

	path, err := w.Write(core.OutputMeta{Source: "quote", Operation: "domestic", Param: "005930"}, []byte("x"), ".json")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quote_domestic_005930.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.Empty(t, buf.String())
}
