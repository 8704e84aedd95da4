package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/axellelanca/surl/internal/errors"
)

func withSystemClipboard(t *testing.T, supported bool, write func(string) error) {
	t.Helper()
	origWrite, origUnsupported := writeAll, unsupported
	writeAll = write
	unsupported = func() bool { return !supported }
	t.Cleanup(func() {
		writeAll = origWrite
		unsupported = origUnsupported
	})
}

func TestOSC52Copier(t *testing.T) {
	var buf bytes.Buffer
	c := NewOSC52Copier(&buf)

	require.NoError(t, c.Copy("https://s.example/AbC123"))

	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("https://s.example/AbC123")) + "\a"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, "osc52", c.Name())
}

func TestOSC52Copier_NoTerminal(t *testing.T) {
	err := NewOSC52Copier(nil).Copy("x")
	assert.ErrorIs(t, err, customerrors.ErrClipboardUnavailable)
}

func TestDetect_FallsBackToOSC52(t *testing.T) {
	withSystemClipboard(t, false, nil)

	c := Detect(&bytes.Buffer{})

	assert.IsType(t, &OSC52Copier{}, c)
}

func TestDetect_PrefersSystemClipboard(t *testing.T) {
	var copied string
	withSystemClipboard(t, true, func(text string) error {
		copied = text
		return nil
	})

	c := Detect(&bytes.Buffer{})

	require.IsType(t, SystemCopier{}, c)
	assert.Equal(t, "system", c.Name())
	require.NoError(t, c.Copy("https://s.example/AbC123"))
	assert.Equal(t, "https://s.example/AbC123", copied)
}

func TestSystemCopier_Failure(t *testing.T) {
	withSystemClipboard(t, true, func(string) error {
		return errors.New("no clipboard utilities available")
	})

	err := SystemCopier{}.Copy("x")

	assert.ErrorIs(t, err, customerrors.ErrClipboardUnavailable)
}
