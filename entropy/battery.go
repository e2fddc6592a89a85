package entropy

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/shirou/gopsutil/host"
)

const powerSupplyDir = "/sys/class/power_supply"

var errNoPowerState = errors.New("no power or sensor state available")

// gatherBattery reads battery and power supply state. On hosts without any
// power supply information it falls back to thermal sensor readings; if
// neither is available the source is unavailable.
func gatherBattery() ([]byte, error) {
	var b []byte

	entries, err := os.ReadDir(powerSupplyDir)
	if err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			data, err := os.ReadFile(filepath.Join(powerSupplyDir, name, "uevent"))
			if err != nil {
				continue
			}
			b = append(b, data...)
		}
	}

	if temps, err := host.SensorsTemperatures(); err == nil {
		for _, t := range temps {
			b = append(b, []byte(t.SensorKey)...)
			b = appendUint64(b, uint64(t.Temperature*1000))
		}
	}

	if len(b) == 0 {
		return nil, errNoPowerState
	}
	return b, nil
}
