//go:build linux

package system

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/rook-computer/moodlight/internal/palette"
)

func fakeChip(t *testing.T, channels ...int) string {
	t.Helper()
	root := t.TempDir()
	chip := filepath.Join(root, "pwmchip0")
	require.NoError(t, os.MkdirAll(chip, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(chip, "export"), nil, 0o644))
	for _, channel := range channels {
		dir := filepath.Join(chip, "pwm"+strconv.Itoa(channel))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, attr := range []string{"period", "duty_cycle", "enable"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, attr), []byte("0\n"), 0o644))
		}
	}
	return root
}

func readAttr(t *testing.T, root string, channel int, attr string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(root, "pwmchip0", "pwm"+strconv.Itoa(channel), attr))
	require.NoError(t, err)
	return strings.TrimSpace(string(raw))
}

func TestSysfsPWMStartAndSet(t *testing.T) {
	root := fakeChip(t, 0, 1, 2)
	pwm := NewSysfsPWM(0, [3]int{0, 1, 2})
	pwm.Root = root
	pwm.PeriodNs = 255000

	require.NoError(t, pwm.Start())
	for channel := 0; channel < 3; channel++ {
		assert.Equal(t, "255000", readAttr(t, root, channel, "period"))
		assert.Equal(t, "0", readAttr(t, root, channel, "duty_cycle"))
		assert.Equal(t, "1", readAttr(t, root, channel, "enable"))
	}

	pwm.Set(palette.Color{R: 254, G: 127, B: 1})
	assert.Equal(t, "254000", readAttr(t, root, 0, "duty_cycle"))
	assert.Equal(t, "127000", readAttr(t, root, 1, "duty_cycle"))
	assert.Equal(t, "1000", readAttr(t, root, 2, "duty_cycle"))

	require.NoError(t, pwm.Stop())
	for channel := 0; channel < 3; channel++ {
		assert.Equal(t, "0", readAttr(t, root, channel, "duty_cycle"))
		assert.Equal(t, "0", readAttr(t, root, channel, "enable"))
	}
}

func TestSysfsPWMActiveLow(t *testing.T) {
	root := fakeChip(t, 3, 4, 5)
	pwm := NewSysfsPWM(0, [3]int{3, 4, 5})
	pwm.Root = root
	pwm.PeriodNs = 255
	pwm.ActiveLow = true

	require.NoError(t, pwm.Start())
	assert.Equal(t, "255", readAttr(t, root, 3, "duty_cycle"))

	pwm.Set(palette.Color{R: 254})
	assert.Equal(t, "1", readAttr(t, root, 3, "duty_cycle"))
	assert.Equal(t, "255", readAttr(t, root, 4, "duty_cycle"))
}

func TestSysfsPWMExportsMissingChannel(t *testing.T) {
	root := fakeChip(t, 0, 1)
	pwm := NewSysfsPWM(0, [3]int{0, 1, 2})
	pwm.Root = root

	// A plain directory does not create pwm2 on export, so the period write fails.
	err := pwm.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pwm2 period")

	raw, readErr := os.ReadFile(filepath.Join(root, "pwmchip0", "export"))
	require.NoError(t, readErr)
	assert.Equal(t, "2", string(raw))
}

func TestSysfsPWMMissingChip(t *testing.T) {
	pwm := NewSysfsPWM(7, [3]int{0, 1, 2})
	pwm.Root = t.TempDir()
	assert.Error(t, pwm.Start())

	// Writes before a successful start are dropped.
	pwm.Set(palette.Color{R: 1})
	assert.NoError(t, pwm.Stop())
}

// kernelWrite behaves like the pwm sysfs driver: a period shorter than the
// current duty cycle, or a duty cycle longer than the period, is EINVAL.
func kernelWrite(path, value string) error {
	dir, attr := filepath.Split(path)
	readInt := func(name string) int64 {
		raw, _ := os.ReadFile(filepath.Join(dir, name))
		n, _ := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		return n
	}
	v, err := strconv.ParseInt(value, 10, 64)
	switch {
	case err != nil:
	case attr == "period" && v < readInt("duty_cycle"):
		return unix.EINVAL
	case attr == "duty_cycle" && v > readInt("period"):
		return unix.EINVAL
	}
	return writeAttr(path, value)
}

func TestSysfsPWMShorterPeriodThanLeftoverDuty(t *testing.T) {
	root := fakeChip(t, 0, 1, 2)
	for channel := 0; channel < 3; channel++ {
		dir := filepath.Join(root, "pwmchip0", "pwm"+strconv.Itoa(channel))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "period"), []byte("1000000\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "duty_cycle"), []byte("900000\n"), 0o644))
	}
	pwm := NewSysfsPWM(0, [3]int{0, 1, 2})
	pwm.Root = root
	pwm.PeriodNs = 255000
	pwm.write = kernelWrite

	require.NoError(t, pwm.Start())
	for channel := 0; channel < 3; channel++ {
		assert.Equal(t, "255000", readAttr(t, root, channel, "period"))
		assert.Equal(t, "0", readAttr(t, root, channel, "duty_cycle"))
	}

	pwm.Set(palette.Color{R: 254})
	assert.Equal(t, "254000", readAttr(t, root, 0, "duty_cycle"))
}
