package entropy

import (
	"testing"
	"time"
)

func TestCollectDisabled(t *testing.T) {
	blobs, err := Collect(Toggles{})
	if err != nil {
		t.Errorf("collect with no sources reported failures: %s", err)
	}
	if len(blobs) != 0 {
		t.Errorf("collect with no sources returned %d blobs", len(blobs))
	}
}

func TestCollectOrder(t *testing.T) {
	toggles := AllEnabled()
	toggles.Audio = false // skip the capture window, this test runs twice

	for run := 0; run < 2; run++ {
		blobs, _ := Collect(toggles)
		if len(blobs) == 0 {
			t.Fatal("no source contributed anything")
		}
		last := Source(0)
		for i, blob := range blobs {
			if i > 0 && blob.Source <= last {
				t.Errorf("collection order not deterministic: %s after %s", blob.Source, last)
			}
			last = blob.Source
			if len(blob.Data) == 0 {
				t.Errorf("source %s returned an empty blob", blob.Source)
			}
		}
	}
}

func TestToggles(t *testing.T) {
	all := AllEnabled()
	for s := SourceHardware; s <= SourceNetwork; s++ {
		if !all.Enabled(s) {
			t.Errorf("AllEnabled misses source %s", s)
		}
		if (Toggles{}).Enabled(s) {
			t.Errorf("zero Toggles enables source %s", s)
		}
	}
	if (Toggles{}).Enabled(Source(99)) {
		t.Error("unknown source reported as enabled")
	}
	if Source(99).String() != "unknown" {
		t.Error("unknown source name")
	}
}

func TestTimingSources(t *testing.T) {
	data, err := gatherCPUTiming()
	if err != nil || len(data) == 0 {
		t.Errorf("cpu timing source failed: %s", err)
	}

	data, err = gatherPerfCounter()
	if err != nil || len(data) == 0 {
		t.Errorf("perf counter source failed: %s", err)
	}

	start := time.Now()
	data, err = gatherAudio()
	if err != nil || len(data) == 0 {
		t.Errorf("audio source failed: %s", err)
	}
	if elapsed := time.Since(start); elapsed < audioSamples*audioSampleGap {
		t.Errorf("audio capture window too short: %s", elapsed)
	}
}
