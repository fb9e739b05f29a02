package clipboard

import (
	sysclip "github.com/atotto/clipboard"
	"github.com/rotisserie/eris"
)

// Writer places text on a clipboard.
type Writer interface {
	Copy(text string) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(text string) error

// Copy calls f(text).
func (f WriterFunc) Copy(text string) error {
	return f(text)
}

// ErrUnavailable indicates the host offers no clipboard mechanism.
var ErrUnavailable = eris.New("system clipboard unavailable")

// System writes to the operating system clipboard.
type System struct{}

var _ Writer = System{}

// Copy writes text to the system clipboard. There is no readback.
func (System) Copy(text string) error {
	if sysclip.Unsupported {
		return eris.Wrap(ErrUnavailable, "no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}

	if err := sysclip.WriteAll(text); err != nil {
		return eris.Wrap(err, "writing to system clipboard")
	}

	return nil
}
