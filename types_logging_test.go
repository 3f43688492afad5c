package azauth

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewline(t *testing.T) {
	assert.Equal(t, "", newline(""))
	assert.Equal(t, "msg\n", newline("msg"))
	assert.Equal(t, "msg\n", newline("msg\n"))
}

func TestDefaultLoggerPrefixesLevel(t *testing.T) {
	stdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	var logger Logger = defLogger{}
	logger.Warn("base url %s uses HTTP", "http://example.com")
	logger.Error("boom")

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "[WRN] AZAUTH base url http://example.com uses HTTP\n[ERR] AZAUTH boom\n", string(out))
}
