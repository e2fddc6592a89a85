package procwatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shirou/gopsutil/net"
	"github.com/shirou/gopsutil/process"
)

// Session observes a process over an explicit time window. It is an owned
// value returned to the caller, several sessions may run at the same time.
type Session struct {
	// ID identifies the session, eg. in logs.
	ID uuid.UUID

	pid    int32
	fields Field
	proc   *process.Process

	started  time.Time
	cpuStart float64
	ioStart  *process.IOCountersStat
	netStart *net.IOCountersStat
	ended    bool
}

// ErrSessionEnded is returned when an ended session is used again.
var ErrSessionEnded = errors.New("session already ended")

// StartSession begins observing the given process. The returned session must
// be finished with End.
func StartSession(pid int32, fields Field) (*Session, error) {
	if fields == 0 {
		return nil, ErrNoFields
	}

	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("process %d not available: %w", pid, err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to create session id: %w", err)
	}

	s := &Session{
		ID:      id,
		pid:     pid,
		fields:  fields,
		proc:    proc,
		started: time.Now(),
	}

	if fields.Has(FieldCPUUsage) {
		if times, err := proc.Times(); err == nil {
			s.cpuStart = times.User + times.System
		}
	}
	if fields.Has(FieldIO) {
		if io, err := proc.IOCounters(); err == nil {
			s.ioStart = io
		}
	}
	if fields.Has(FieldNet) {
		if counters, err := net.IOCounters(false); err == nil && len(counters) > 0 {
			s.netStart = &counters[0]
		}
	}

	return s, nil
}

// End finishes the session and returns the collected report. CPU usage, IO
// and network fields are deltas over the session window, memory and counts
// are read at the end.
func (s *Session) End() (*Report, error) {
	if s.ended {
		return nil, ErrSessionEnded
	}
	s.ended = true

	elapsed := time.Since(s.started)
	r := &Report{
		PID:             s.pid,
		DurationSeconds: elapsed.Seconds(),
	}

	if err := collectInto(r, s.proc, s.fields); err != nil {
		return nil, err
	}

	if s.fields.Has(FieldCPUUsage) && elapsed > 0 {
		if times, err := s.proc.Times(); err == nil {
			used := times.User + times.System - s.cpuStart
			r.CPUPercent = used / elapsed.Seconds() * 100
		}
	}

	// counters are best effort, only compute deltas when both reads worked
	if s.fields.Has(FieldIO) && s.ioStart != nil && r.ReadOps >= s.ioStart.ReadCount {
		r.ReadOps -= s.ioStart.ReadCount
		r.WriteOps -= s.ioStart.WriteCount
		r.ReadBytes -= s.ioStart.ReadBytes
		r.WriteBytes -= s.ioStart.WriteBytes
	}

	if s.fields.Has(FieldNet) && s.netStart != nil && r.NetBytesSent >= s.netStart.BytesSent {
		r.NetBytesSent -= s.netStart.BytesSent
		r.NetBytesRecv -= s.netStart.BytesRecv
	}

	return r, nil
}
