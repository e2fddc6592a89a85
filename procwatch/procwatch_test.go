package procwatch

import (
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestSnapshot(t *testing.T) {
	pid := int32(os.Getpid())

	r, err := Snapshot(pid, FieldWorkingSet|FieldThreads)
	if err != nil {
		t.Fatalf("snapshot failed: %s", err)
	}
	if r.PID != pid {
		t.Errorf("report for pid %d, want %d", r.PID, pid)
	}
	if r.WorkingSet == 0 {
		t.Error("working set of the test process reported as 0")
	}
	if r.Threads == 0 {
		t.Error("thread count of the test process reported as 0")
	}

	if _, err := Snapshot(pid, 0); err != ErrNoFields {
		t.Errorf("want ErrNoFields, got %v", err)
	}
	if _, err := Snapshot(-2, FieldAll); err == nil {
		t.Error("snapshot of an impossible pid succeeded")
	}
}

func TestReportJSON(t *testing.T) {
	r, err := Snapshot(int32(os.Getpid()), FieldWorkingSet)
	if err != nil {
		t.Fatalf("snapshot failed: %s", err)
	}
	data, err := r.JSON()
	if err != nil {
		t.Fatalf("marshal failed: %s", err)
	}
	if !strings.Contains(string(data), `"working_set"`) {
		t.Errorf("json misses working_set: %s", data)
	}
}

func TestSession(t *testing.T) {
	s, err := StartSession(int32(os.Getpid()), FieldWorkingSet|FieldCPUUsage)
	if err != nil {
		t.Fatalf("start session failed: %s", err)
	}
	if s.ID.IsNil() {
		t.Error("session has no id")
	}

	// burn a little CPU inside the window
	x := 0
	for i := 0; i < 1e6; i++ {
		x += i
	}
	_ = x
	time.Sleep(10 * time.Millisecond)

	r, err := s.End()
	if err != nil {
		t.Fatalf("end session failed: %s", err)
	}
	if r.DurationSeconds <= 0 {
		t.Error("session window has no duration")
	}
	if r.WorkingSet == 0 {
		t.Error("working set missing from session report")
	}

	if _, err := s.End(); err != ErrSessionEnded {
		t.Errorf("want ErrSessionEnded, got %v", err)
	}
}

func TestFieldSet(t *testing.T) {
	f := FieldWorkingSet | FieldIO
	if !f.Has(FieldWorkingSet) || !f.Has(FieldIO) {
		t.Error("field set misses selected fields")
	}
	if f.Has(FieldNet) {
		t.Error("field set includes unselected field")
	}
	for _, field := range []Field{
		FieldWorkingSet, FieldPrivateBytes, FieldSwap, FieldHandles,
		FieldThreads, FieldCPUUsage, FieldIO, FieldNet,
	} {
		if !FieldAll.Has(field) {
			t.Errorf("FieldAll misses field %b", field)
		}
	}
}

func TestMonitor(t *testing.T) {
	var polls int64
	m := NewMonitor(int32(os.Getpid()), FieldWorkingSet, 10*time.Millisecond, func(r *Report) {
		if r.WorkingSet == 0 {
			t.Error("monitor report misses working set")
		}
		atomic.AddInt64(&polls, 1)
	})

	if err := m.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	if !m.Running() {
		t.Error("monitor not running after start")
	}

	time.Sleep(60 * time.Millisecond)
	m.Stop()
	if m.Running() {
		t.Error("monitor still running after stop")
	}

	if got := atomic.LoadInt64(&polls); got < 2 {
		t.Errorf("monitor fired %d times in 60ms at a 10ms interval", got)
	}

	// stopping again must not block or panic
	m.Stop()
}

func TestMonitorDuration(t *testing.T) {
	m := NewMonitor(int32(os.Getpid()), FieldWorkingSet, time.Millisecond, func(*Report) {})
	m.Duration = 5 * time.Millisecond

	if err := m.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	deadline := time.Now().Add(time.Second)
	for m.Running() {
		if time.Now().After(deadline) {
			t.Fatal("monitor did not stop after its duration ran out")
		}
		time.Sleep(time.Millisecond)
	}

	// a timed out monitor must not be restartable
	if err := m.Start(); err != nil {
		t.Fatalf("start after timeout returned an error: %s", err)
	}
	if m.Running() {
		t.Error("monitor restarted after its duration ran out")
	}

	// and stopping it afterwards must not block or panic
	m.Stop()
	m.Stop()
}

func TestMonitorWithoutFields(t *testing.T) {
	m := NewMonitor(int32(os.Getpid()), 0, time.Millisecond, func(*Report) {})
	if err := m.Start(); err != ErrNoFields {
		t.Errorf("want ErrNoFields, got %v", err)
	}
}
