//go:build linux

package system

import (
	"encoding/binary"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultADCPath is the IIO sample file for the unconnected seed input.
const DefaultADCPath = "/sys/bus/iio/devices/iio:device0/in_voltage3_raw"

// ADCNoise reads one raw sample from a floating ADC input. When the ADC
// cannot be read it falls back to kernel entropy so boot never stalls.
type ADCNoise struct {
	Path   string
	Logger Logger
}

func (n ADCNoise) ReadNoise() int {
	logger := n.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	path := n.Path
	if path == "" {
		path = DefaultADCPath
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		sample, perr := strconv.Atoi(strings.TrimSpace(string(raw)))
		if perr == nil {
			logger.Infof("noise", "adc sample %d from %s", sample, path)
			return sample
		}
		err = perr
	}
	logger.Errorf("noise", "adc read %s failed, using kernel entropy: %v", path, err)
	return entropySample()
}

func entropySample() int {
	var buf [4]byte
	if _, err := unix.Getrandom(buf[:], 0); err != nil {
		return int(os.Getpid())
	}
	return int(binary.LittleEndian.Uint32(buf[:]) & 0x7fffffff)
}
