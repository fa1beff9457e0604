//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// SetGraphicsMode stops the kernel console from drawing over the framebuffer preview.
func SetGraphicsMode() error { return setConsoleMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode hands the console back to the kernel.
func RestoreTextMode() error { return setConsoleMode(kdText, "KD_TEXT") }

func HideCursor() error { return writeConsole("\x1b[?25l") }
func ShowCursor() error { return writeConsole("\x1b[?25h") }

// TakeConsole switches to graphics mode and hides the cursor, logging the
// outcome. The returned func restores the console.
func TakeConsole(l Logger) (restore func()) {
	if l == nil {
		l = noopLogger{}
	}
	if err := SetGraphicsMode(); err != nil {
		l.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		l.Infof("tty", "KD_GRAPHICS set")
	}
	if err := HideCursor(); err != nil {
		l.Errorf("tty", "hide cursor failed: %v", err)
	}
	return func() {
		if err := ShowCursor(); err != nil {
			l.Errorf("tty", "show cursor failed: %v", err)
		}
		if err := RestoreTextMode(); err != nil {
			l.Errorf("tty", "KD_TEXT failed: %v", err)
		} else {
			l.Infof("tty", "KD_TEXT set")
		}
	}
}

func setConsoleMode(mode int, name string) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeConsole(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write console: %w", lastErr)
}
