package rng

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/maxrng/maxrng/entropy"
	"github.com/maxrng/maxrng/hash"
)

func TestGenerateOutputsDiffer(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)

	if err := Generate(a); err != nil {
		t.Fatalf("Generate failed: %s", err)
	}
	if err := Generate(b); err != nil {
		t.Fatalf("Generate failed: %s", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two consecutive Generate calls produced identical output")
	}
}

func TestGenerateUltraClampedComplexity(t *testing.T) {
	// out of range complexities are clamped, not rejected
	buf := make([]byte, 16)
	if err := GenerateUltra(buf, 0); err != nil {
		t.Errorf("GenerateUltra(0) failed: %s", err)
	}
	if err := GenerateUltra(buf, 15); err != nil {
		t.Errorf("GenerateUltra(15) failed: %s", err)
	}

	// with fixed entropy, a clamped complexity yields the exact same
	// stream as its in-range equivalent
	pairs := [][2]int{{0, 1}, {-5, 1}, {15, 10}, {11, 10}}
	for _, pair := range pairs {
		a := generateFixed(t, pair[0])
		b := generateFixed(t, pair[1])
		if !bytes.Equal(a, b) {
			t.Errorf("complexity %d does not behave like %d after clamping", pair[0], pair[1])
		}
	}
}

func generateFixed(t *testing.T, complexity int) []byte {
	t.Helper()
	c := &Config{
		Sources:    entropy.AllEnabled(),
		Algorithm:  hash.SHA2_512,
		Mixing:     MixRoundChained,
		Expansion:  ExpandCounter,
		Complexity: clampComplexity(complexity, MaxComplexity),
		collect:    fixedCollector([]byte("fixed test entropy")),
	}
	out := make([]byte, 24)
	if _, err := run(c, out, len(out)); err != nil {
		t.Fatalf("run failed: %s", err)
	}
	return out
}

func TestGenerateAdvancedHexScenario(t *testing.T) {
	cfg := &Config{
		Sources: entropy.AllEnabled(),
		Output:  OutputHex,
		collect: fixedCollector([]byte("advanced test entropy")),
	}

	// exact buffer: 16 raw bytes need 32 hex bytes
	dst := make([]byte, 32)
	n, err := GenerateAdvanced(dst, 16, cfg)
	if err != nil {
		t.Fatalf("GenerateAdvanced failed: %s", err)
	}
	if n != 32 {
		t.Errorf("GenerateAdvanced wrote %d bytes, want 32", n)
	}
	for _, b := range dst {
		if !(b >= '0' && b <= '9' || b >= 'a' && b <= 'f') {
			t.Fatalf("output %q is not lowercase hex", dst)
		}
	}

	// one byte short: fail, write nothing
	short := bytes.Repeat([]byte{0xaa}, 31)
	sentinel := append([]byte(nil), short...)
	n, err = GenerateAdvanced(short, 16, cfg)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("want ErrBufferTooSmall, got %v", err)
	}
	if n != 0 {
		t.Errorf("GenerateAdvanced returned %d on failure", n)
	}
	if !bytes.Equal(short, sentinel) {
		t.Error("buffer modified on failure")
	}
}

func TestGenerateAdvancedInvalidArguments(t *testing.T) {
	cfg := DefaultConfig(PresetBalanced)
	cfg.collect = fixedCollector([]byte("x"))

	if _, err := GenerateAdvanced(nil, 16, cfg); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil buffer: want ErrInvalidArgument, got %v", err)
	}
	if _, err := GenerateAdvanced(make([]byte, 16), 0, cfg); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero length: want ErrInvalidArgument, got %v", err)
	}
	if _, err := GenerateAdvanced(make([]byte, 16), -1, cfg); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative length: want ErrInvalidArgument, got %v", err)
	}
	if _, err := GenerateAdvanced(make([]byte, 16), 16, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil config: want ErrInvalidArgument, got %v", err)
	}

	userLock := *cfg
	userLock.Concurrency = ConcurrencyUserLock
	if _, err := GenerateAdvanced(make([]byte, 16), 16, &userLock); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("missing locker: want ErrInvalidArgument, got %v", err)
	}
}

func TestGenerateAdvancedNoPartialOutput(t *testing.T) {
	cfg := &Config{
		Sources: entropy.AllEnabled(),
		collect: emptyCollector,
	}

	dst := bytes.Repeat([]byte{0x5c}, 16)
	sentinel := append([]byte(nil), dst...)
	n, err := GenerateAdvanced(dst, 16, cfg)
	if !errors.Is(err, ErrNoEntropy) {
		t.Errorf("want ErrNoEntropy, got %v", err)
	}
	if n != 0 {
		t.Errorf("returned %d on failure", n)
	}
	if !bytes.Equal(dst, sentinel) {
		t.Error("buffer modified although the call failed")
	}
}

type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
}

func (l *countingLocker) Lock() {
	l.mu.Lock()
	l.locks++
}

func (l *countingLocker) Unlock() {
	l.unlocks++
	l.mu.Unlock()
}

func TestUserLockDiscipline(t *testing.T) {
	locker := &countingLocker{}
	cfg := &Config{
		Sources:     entropy.AllEnabled(),
		Concurrency: ConcurrencyUserLock,
		Locker:      locker,
		collect:     fixedCollector([]byte("locked entropy")),
	}

	dst := make([]byte, 16)
	if _, err := GenerateAdvanced(dst, 16, cfg); err != nil {
		t.Fatalf("GenerateAdvanced failed: %s", err)
	}
	if locker.locks != 1 || locker.unlocks != 1 {
		t.Errorf("locker used %d/%d times, want 1/1", locker.locks, locker.unlocks)
	}
}

func TestGenerateThreadsafe(t *testing.T) {
	Init()
	if !Initialized() {
		t.Fatal("engine not initialized after Init")
	}

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := make([]byte, 16)
			errs[i] = GenerateThreadsafe(buf, 1)
			results[i] = buf
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent call %d failed: %s", i, err)
		}
	}
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if bytes.Equal(results[i], results[j]) {
				t.Errorf("concurrent calls %d and %d produced identical output", i, j)
			}
		}
	}
}

func TestHardwareAvailableDoesNotPanic(t *testing.T) {
	_ = HardwareAvailable()
}

func TestRootDigestWidths(t *testing.T) {
	for _, alg := range []hash.Algorithm{hash.SHA1, hash.SHA2_256, hash.SHA2_512} {
		c := &Config{
			Sources:    entropy.AllEnabled(),
			Algorithm:  alg,
			Complexity: 1,
			collect:    fixedCollector([]byte("width test")),
		}
		digest, err := c.aggregate()
		if err != nil {
			t.Fatal(err)
		}
		if len(digest) != int(alg.Size()) {
			t.Errorf("%s root digest width %d, want %d", alg, len(digest), alg.Size())
		}
	}
}
