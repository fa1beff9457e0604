package render

import (
	"github.com/rook-computer/moodlight/internal/system"
)

// Renderer is a channel backend with a device lifecycle. Start must succeed
// before Set has any effect.
type Renderer interface {
	system.Channels
	Start() error
	Stop() error
}
