package entropy

import (
	"runtime"
	"time"
)

const (
	timingBits = 64

	// The audio source samples clock jitter over a bounded capture window
	// instead of reading an actual capture device.
	audioSamples   = 5
	audioSampleGap = 10 * time.Millisecond
)

// gatherCPUTiming collects the least significant bit of the nanosecond clock
// once per scheduler yield. The busier the host, the better the quality, as
// the scheduler cannot resume the goroutine at an exact interval.
func gatherCPUTiming() ([]byte, error) {
	var value uint64
	for i := 0; i < timingBits; i++ {
		runtime.Gosched()
		value = (value << 1) | uint64(time.Now().UnixNano()&1)
	}

	b := make([]byte, 0, 16)
	b = appendUint64(b, value)
	b = appendInt64(b, time.Now().UnixNano())
	return b, nil
}

// gatherPerfCounter samples the high resolution clock a few times in a row,
// keeping both the absolute readings and their deltas.
func gatherPerfCounter() ([]byte, error) {
	b := make([]byte, 0, 64)
	last := time.Now().UnixNano()
	b = appendInt64(b, last)
	for i := 0; i < 3; i++ {
		now := time.Now().UnixNano()
		b = appendInt64(b, now)
		b = appendInt64(b, now-last)
		last = now
	}
	return b, nil
}

// gatherAudio emulates an audio capture window: it waits out a bounded
// capture period and records the clock drift of each sample slot.
func gatherAudio() ([]byte, error) {
	b := make([]byte, 0, audioSamples*16)
	for i := 0; i < audioSamples; i++ {
		before := time.Now()
		time.Sleep(audioSampleGap)
		after := time.Now()
		b = appendInt64(b, after.UnixNano())
		b = appendInt64(b, int64(after.Sub(before)-audioSampleGap))
	}
	return b, nil
}
