//go:build linux

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// redirectStdIO points fds 1 and 2 at path, so runtime panics written by
// any goroutine land in the file. Dup3 is used because arm64 has no dup2.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup3(int(f.Fd()), int(std.Fd()), 0); err != nil {
			return fmt.Errorf("dup onto fd %d: %w", std.Fd(), err)
		}
	}
	return nil
}
