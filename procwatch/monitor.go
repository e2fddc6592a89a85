package procwatch

import (
	"time"

	"github.com/tevino/abool"

	"github.com/maxrng/maxrng/log"
)

// Monitor polls metrics of a process on a timer and hands every report to a
// callback. The callback runs on the monitor's goroutine and must not block
// for long.
type Monitor struct {
	pid      int32
	fields   Field
	interval time.Duration

	// Duration stops the monitor after the given total runtime. Zero means
	// it runs until Stop is called.
	Duration time.Duration

	callback func(*Report)

	started  *abool.AtomicBool
	stopped  *abool.AtomicBool
	running  *abool.AtomicBool
	shutdown chan struct{}
	done     chan struct{}
}

// NewMonitor creates a monitor for the given process. It does not start
// polling until Start is called.
func NewMonitor(pid int32, fields Field, interval time.Duration, callback func(*Report)) *Monitor {
	return &Monitor{
		pid:      pid,
		fields:   fields,
		interval: interval,
		callback: callback,
		started:  abool.New(),
		stopped:  abool.New(),
		running:  abool.New(),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling. A monitor can only be started once; further calls
// are no-ops, also after the monitor stopped because its Duration ran out.
func (m *Monitor) Start() error {
	if m.fields == 0 {
		return ErrNoFields
	}
	if !m.started.SetToIf(false, true) {
		return nil
	}
	m.running.Set()
	go m.run()
	return nil
}

// Stop ends polling and waits for the monitor goroutine to exit. Stop is
// idempotent and may also be called after the Duration already ended the
// monitor.
func (m *Monitor) Stop() {
	if !m.started.IsSet() {
		return
	}
	if m.stopped.SetToIf(false, true) {
		close(m.shutdown)
	}
	<-m.done
}

// Running reports whether the monitor is currently polling.
func (m *Monitor) Running() bool {
	return m.running.IsSet()
}

func (m *Monitor) run() {
	defer close(m.done)
	defer m.running.UnSet()

	var timeout <-chan time.Time
	if m.Duration > 0 {
		timeout = time.After(m.Duration)
	}

	for {
		select {
		case <-time.After(m.interval):
			report, err := Snapshot(m.pid, m.fields)
			if err != nil {
				log.Warningf("procwatch: failed to poll process %d: %s", m.pid, err)
				continue
			}
			m.callback(report)

		case <-timeout:
			return

		case <-m.shutdown:
			return
		}
	}
}
