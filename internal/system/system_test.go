package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedNoise(t *testing.T) {
	assert.Equal(t, 812, FixedNoise(812).ReadNoise())
}

func TestScaledDelayer(t *testing.T) {
	start := time.Now()
	ScaledDelayer{Speed: 100}.Delay(2 * time.Second)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}
