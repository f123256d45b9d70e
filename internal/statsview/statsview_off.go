//go:build !statsview

package statsview

import "github.com/retroenv/retrogolib/log"

// Launch logs that the statistics server is not part of the build.
func Launch(logger *log.Logger, _ string) func() {
	logger.Warn("Stats server is not available, build with the statsview tag")
	return func() {}
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
