// Package clipboard copies text to the user's clipboard from the CLI.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	customerrors "github.com/axellelanca/surl/internal/errors"
)

// Copier puts text on the clipboard.
type Copier interface {
	Copy(text string) error
	Name() string
}

// Swapped in tests.
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// SystemCopier uses the platform clipboard (pbcopy, wl-copy, xclip, xsel or the Windows API).
type SystemCopier struct{}

// Copy hands text to the platform clipboard.
func (SystemCopier) Copy(text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", customerrors.ErrClipboardUnavailable, err)
	}
	return nil
}

func (SystemCopier) Name() string { return "system" }

// OSC52Copier asks the terminal emulator to set the clipboard through an OSC 52 escape
// sequence. It works over SSH but depends on terminal support, hence the fallback role.
type OSC52Copier struct {
	w io.Writer
}

// NewOSC52Copier returns a Copier writing escape sequences to w, usually os.Stderr.
func NewOSC52Copier(w io.Writer) *OSC52Copier {
	return &OSC52Copier{w: w}
}

// Copy writes the escape sequence carrying text.
func (c *OSC52Copier) Copy(text string) error {
	if c.w == nil {
		return customerrors.ErrClipboardUnavailable
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(c.w, seq); err != nil {
		return fmt.Errorf("%w: %v", customerrors.ErrClipboardUnavailable, err)
	}
	return nil
}

func (c *OSC52Copier) Name() string { return "osc52" }

// Detect returns a SystemCopier when the platform clipboard is usable, or an OSC52Copier
// writing to terminal otherwise.
func Detect(terminal io.Writer) Copier {
	if unsupported() {
		return NewOSC52Copier(terminal)
	}
	return SystemCopier{}
}
