package export

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("no clipboard utility available")

// CopyText puts text on the system clipboard.
func CopyText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
