// Package statsview serves runtime statistics of the emulator process over HTTP.
//
// After launch, graphical statistics are viewable at
//
//	localhost:18066/debug/statsview
//
// and the standard Go pprof endpoints at localhost:18066/debug/pprof/.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the local address the statistics server listens on.
const Address = "localhost:18066"

const url = "/debug/statsview"

// Launch starts the statistics server on a new goroutine.
func Launch(logger *log.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Runtime statistics server started", log.String("url", "http://"+Address+url))
}
