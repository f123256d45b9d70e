//go:build statsview

package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Launch starts the statistics server in a new goroutine and returns a
// function that stops it.
func Launch(logger *log.Logger, address string) func() {
	viewer.SetConfiguration(viewer.WithAddr(address))
	mgr := statsview.New()
	go mgr.Start()

	logger.Info("Stats server available", log.String("url", "http://"+address+path))
	return mgr.Stop
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
