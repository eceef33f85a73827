//go:build fyne && !cgo

package ui

import (
	"fmt"

	"anchorkit/internal/config"
)

// Run informs the user that the Fyne demo requires cgo (OpenGL) and a C
// toolchain. This stub is compiled when the build uses -tags fyne but CGO is
// disabled.
func Run(_ config.AppConfig) error {
	return fmt.Errorf("the Fyne demo requires cgo (OpenGL). Enable cgo and install a C toolchain, then run with CGO_ENABLED=1: CGO_ENABLED=1 go run -tags fyne ./cmd/anchorkit ui")
}
