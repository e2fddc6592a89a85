// Package procwatch samples process and host metrics: memory working set,
// private bytes, swap usage, open handles, thread count, CPU usage, disk IO
// and network traffic.
//
// Metrics can be read as an instant Snapshot, as a delta over an explicit
// Session, or continuously through a timer-driven Monitor.
package procwatch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/net"
	"github.com/shirou/gopsutil/process"
)

// Field selects a metric to collect. Fields combine as a bit set.
type Field uint8

const (
	FieldWorkingSet Field = 1 << iota
	FieldPrivateBytes
	FieldSwap
	FieldHandles
	FieldThreads
	FieldCPUUsage
	FieldIO
	FieldNet

	FieldAll = FieldWorkingSet | FieldPrivateBytes | FieldSwap | FieldHandles |
		FieldThreads | FieldCPUUsage | FieldIO | FieldNet
)

// Has reports whether f includes the given field.
func (f Field) Has(field Field) bool {
	return f&field != 0
}

// ErrNoFields is returned when a collection is requested without any fields.
var ErrNoFields = errors.New("no metric fields selected")

// Report holds one set of collected metrics. Only the requested fields are
// populated.
type Report struct {
	PID int32 `json:"pid"`

	WorkingSet   uint64 `json:"working_set,omitempty"`
	PrivateBytes uint64 `json:"private_bytes,omitempty"`
	Swap         uint64 `json:"swap,omitempty"`
	Handles      int32  `json:"handles,omitempty"`
	Threads      int32  `json:"threads,omitempty"`

	CPUPercent float64 `json:"cpu_percent,omitempty"`

	ReadOps    uint64 `json:"read_ops,omitempty"`
	WriteOps   uint64 `json:"write_ops,omitempty"`
	ReadBytes  uint64 `json:"read_bytes,omitempty"`
	WriteBytes uint64 `json:"write_bytes,omitempty"`

	NetBytesSent uint64 `json:"net_bytes_sent,omitempty"`
	NetBytesRecv uint64 `json:"net_bytes_recv,omitempty"`

	// DurationSeconds is the observation window of a session report, 0 for
	// snapshots.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// JSON returns the report as JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Snapshot collects an instant report for the given process.
func Snapshot(pid int32, fields Field) (*Report, error) {
	if fields == 0 {
		return nil, ErrNoFields
	}

	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("process %d not available: %w", pid, err)
	}

	r := &Report{PID: pid}
	if err := collectInto(r, proc, fields); err != nil {
		return nil, err
	}

	if fields.Has(FieldCPUUsage) {
		percent, err := proc.CPUPercent()
		if err != nil {
			return nil, fmt.Errorf("cpu usage of process %d: %w", pid, err)
		}
		r.CPUPercent = percent
	}
	return r, nil
}

// collectInto fills all point-in-time fields. CPU usage is handled by the
// caller, its meaning differs between snapshots and sessions.
func collectInto(r *Report, proc *process.Process, fields Field) error {
	if fields.Has(FieldWorkingSet) || fields.Has(FieldPrivateBytes) || fields.Has(FieldSwap) {
		mem, err := proc.MemoryInfo()
		if err != nil {
			return fmt.Errorf("memory info of process %d: %w", r.PID, err)
		}
		if fields.Has(FieldWorkingSet) {
			r.WorkingSet = mem.RSS
		}
		if fields.Has(FieldPrivateBytes) {
			r.PrivateBytes = mem.VMS
		}
		if fields.Has(FieldSwap) {
			r.Swap = mem.Swap
		}
	}

	if fields.Has(FieldHandles) {
		// open file descriptors on unix, handles on windows
		handles, err := proc.NumFDs()
		if err == nil {
			r.Handles = handles
		}
	}

	if fields.Has(FieldThreads) {
		threads, err := proc.NumThreads()
		if err != nil {
			return fmt.Errorf("thread count of process %d: %w", r.PID, err)
		}
		r.Threads = threads
	}

	if fields.Has(FieldIO) {
		// io counters need elevated rights on some platforms, best effort
		if io, err := proc.IOCounters(); err == nil {
			r.ReadOps = io.ReadCount
			r.WriteOps = io.WriteCount
			r.ReadBytes = io.ReadBytes
			r.WriteBytes = io.WriteBytes
		}
	}

	if fields.Has(FieldNet) {
		counters, err := net.IOCounters(false)
		if err == nil && len(counters) > 0 {
			r.NetBytesSent = counters[0].BytesSent
			r.NetBytesRecv = counters[0].BytesRecv
		}
	}

	return nil
}
