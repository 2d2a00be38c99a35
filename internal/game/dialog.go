package game

import (
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/fractal-tree/internal/config"
)

// ShowFatal pops up a native error dialog for an error that is about to
// end the program, and waits for it to be dismissed.
func ShowFatal(err error) error {
	if err == nil {
		return nil
	}
	return zenity.Error(err.Error(),
		zenity.Title(config.WindowTitle+": fatal error"),
		zenity.ErrorIcon)
}
