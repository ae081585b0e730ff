package preview

import (
	"github.com/skratchdot/open-golang/open"
)

// Launcher hands a file to an external program.
type Launcher interface {
	Open(path string) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(path string) error

// Open implements Launcher.
func (f LauncherFunc) Open(path string) error {
	return f(path)
}

// SystemLauncher opens files with the platform's default handler
// (xdg-open, open, or start) and returns without waiting for it.
var SystemLauncher Launcher = LauncherFunc(open.Start)
