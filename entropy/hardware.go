package entropy

import (
	"crypto/rand"
	"errors"

	"golang.org/x/sys/cpu"
)

const (
	hardwareBytes   = 32
	hardwareRetries = 10
)

var errHardwareRead = errors.New("hardware rng read failed")

// HardwareAvailable reports whether the CPU exposes a hardware random number
// instruction. The hardware source itself reads from the operating system
// pool, which is seeded from this instruction where present, so a false
// return does not disable the source.
func HardwareAvailable() bool {
	return cpu.X86.HasRDRAND
}

// gatherHardware reads from the kernel CSPRNG with bounded retries. A failure
// here is degraded-but-non-fatal for the engine, like any other source.
func gatherHardware() ([]byte, error) {
	buf := make([]byte, hardwareBytes)
	for i := 0; i < hardwareRetries; i++ {
		n, err := rand.Read(buf)
		if err == nil && n == hardwareBytes {
			return buf, nil
		}
	}
	return nil, errHardwareRead
}
