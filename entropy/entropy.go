// Package entropy gathers raw bytes from several heterogeneous, variable
// quality system sources. The sources make no quality guarantee on their own,
// they are meant to be mixed into a cryptographic hash by the rng package.
//
// Each source may fail, a failing source simply contributes nothing.
package entropy

import (
	"encoding/binary"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Source identifies a single entropy source.
type Source uint8

const (
	SourceHardware Source = iota
	SourceCPUTiming
	SourceProcessMemory
	SourcePerfCounter
	SourceDisk
	SourceAudio
	SourceBattery
	SourceNetwork
)

var sourceNames = map[Source]string{
	SourceHardware:      "hardware",
	SourceCPUTiming:     "cpu-timing",
	SourceProcessMemory: "process-memory",
	SourcePerfCounter:   "perf-counter",
	SourceDisk:          "disk",
	SourceAudio:         "audio",
	SourceBattery:       "battery",
	SourceNetwork:       "network",
}

func (s Source) String() string {
	name, ok := sourceNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// Toggles enables or disables individual sources.
type Toggles struct {
	Hardware      bool
	CPUTiming     bool
	ProcessMemory bool
	PerfCounter   bool
	Disk          bool
	Audio         bool
	Battery       bool
	Network       bool
}

// AllEnabled returns Toggles with every source enabled.
func AllEnabled() Toggles {
	return Toggles{
		Hardware:      true,
		CPUTiming:     true,
		ProcessMemory: true,
		PerfCounter:   true,
		Disk:          true,
		Audio:         true,
		Battery:       true,
		Network:       true,
	}
}

// Enabled reports whether the given source is enabled.
func (t Toggles) Enabled(s Source) bool {
	switch s {
	case SourceHardware:
		return t.Hardware
	case SourceCPUTiming:
		return t.CPUTiming
	case SourceProcessMemory:
		return t.ProcessMemory
	case SourcePerfCounter:
		return t.PerfCounter
	case SourceDisk:
		return t.Disk
	case SourceAudio:
		return t.Audio
	case SourceBattery:
		return t.Battery
	case SourceNetwork:
		return t.Network
	default:
		return false
	}
}

// Blob is the contribution of a single source.
type Blob struct {
	Source Source
	Data   []byte
}

// gatherers are tried in this exact order on every collection run, so that
// two runs with identical toggles mix their contributions in the same order.
var gatherers = []struct {
	source Source
	gather func() ([]byte, error)
}{
	{SourceHardware, gatherHardware},
	{SourceCPUTiming, gatherCPUTiming},
	{SourceProcessMemory, gatherProcessMemory},
	{SourcePerfCounter, gatherPerfCounter},
	{SourceDisk, gatherDisk},
	{SourceAudio, gatherAudio},
	{SourceBattery, gatherBattery},
	{SourceNetwork, gatherNetwork},
}

// Collect attempts to read a blob from every enabled source, in deterministic
// source order. Sources that fail are skipped and reported in the returned
// error, which is informational only: Collect always returns all blobs it
// could gather. An empty result with a nil error means no source was enabled.
func Collect(t Toggles) ([]Blob, error) {
	var blobs []Blob
	var report *multierror.Error

	for _, g := range gatherers {
		if !t.Enabled(g.source) {
			continue
		}
		data, err := g.gather()
		if err != nil {
			report = multierror.Append(report, fmt.Errorf("%s: %w", g.source, err))
			continue
		}
		if len(data) == 0 {
			report = multierror.Append(report, fmt.Errorf("%s: no data", g.source))
			continue
		}
		blobs = append(blobs, Blob{Source: g.source, Data: data})
	}

	return blobs, report.ErrorOrNil()
}

func appendUint64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendInt64(b []byte, v int64) []byte {
	return appendUint64(b, uint64(v))
}
