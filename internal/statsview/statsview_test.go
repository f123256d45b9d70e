//go:build !statsview

package statsview

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLaunchWithoutBuildTag(t *testing.T) {
	assert.False(t, Available())
	stop := Launch(log.NewTestLogger(t), DefaultAddress)
	assert.NotNil(t, stop)
	stop()
}
