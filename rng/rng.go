package rng

import (
	"errors"
	"fmt"

	"github.com/maxrng/maxrng/entropy"
	"github.com/maxrng/maxrng/hash"
)

// Engine errors. All API functions return a wrapped sentinel, callers match
// with errors.Is.
var (
	// ErrInvalidArgument flags bad input: empty buffers, non-positive
	// lengths, inconsistent configuration. Detected before any entropy is
	// collected.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBufferTooSmall flags an output buffer shorter than the exact
	// requirement of the selected output mode. Nothing is written.
	ErrBufferTooSmall = errors.New("output buffer too small")

	// ErrNoEntropy flags an invocation in which no enabled source
	// contributed a single byte across all rounds.
	ErrNoEntropy = errors.New("no entropy source contributed")

	// ErrAlgorithmUnavailable flags an unknown or unsupported hash
	// algorithm.
	ErrAlgorithmUnavailable = errors.New("hash algorithm unavailable")
)

// HardwareAvailable reports whether the CPU exposes a hardware random number
// instruction.
func HardwareAvailable() bool {
	return entropy.HardwareAvailable()
}

// Generate fills buf with pseudorandom bytes using balanced defaults, a
// single mixing round and no locking.
func Generate(buf []byte) error {
	c := &Config{
		Sources:    entropy.AllEnabled(),
		Algorithm:  hash.SHA2_256,
		Mixing:     MixContinuous,
		Expansion:  ExpandCounter,
		Complexity: 1,
	}
	_, err := run(c, buf, len(buf))
	return err
}

// GenerateUltra fills buf using secure defaults: all sources, the widest
// digest and round-chained mixing. The complexity is clamped to [1,10].
func GenerateUltra(buf []byte, complexity int) error {
	c := &Config{
		Sources:    entropy.AllEnabled(),
		Algorithm:  hash.SHA2_512,
		Mixing:     MixRoundChained,
		Expansion:  ExpandCounter,
		Complexity: clampComplexity(complexity, MaxComplexity),
	}
	_, err := run(c, buf, len(buf))
	return err
}

// GenerateThreadsafe fills buf like Generate, but fully serialized on the
// process-wide engine lock. The complexity is clamped to [1,5].
func GenerateThreadsafe(buf []byte, complexity int) error {
	c := &Config{
		Sources:     entropy.AllEnabled(),
		Algorithm:   hash.SHA2_256,
		Mixing:      MixContinuous,
		Expansion:   ExpandCounter,
		Complexity:  clampComplexity(complexity, MaxThreadsafeComplexity),
		Concurrency: ConcurrencyInternalLock,
	}
	_, err := run(c, buf, len(buf))
	return err
}

// GenerateAdvanced runs the full pipeline with the given config: it
// generates rawLen pseudorandom bytes, formats them per the config's output
// mode into dst and returns the number of bytes written. On any failure it
// returns 0 and dst is left untouched.
//
// dst must hold at least cfg.Output.RequiredLength(rawLen) bytes; shorter
// buffers fail before any entropy is collected.
func GenerateAdvanced(dst []byte, rawLen int, cfg *Config) (int, error) {
	if cfg == nil {
		return 0, fmt.Errorf("%w: nil config", ErrInvalidArgument)
	}

	// Work on a copy, the caller's config is read-only.
	c := *cfg
	c.ApplyPreset()
	c.Complexity = clampComplexity(c.Complexity, MaxComplexity)
	if c.Algorithm == 0 {
		c.Algorithm = hash.SHA2_256
	}
	return run(&c, dst, rawLen)
}

// run executes the aggregate -> expand -> format pipeline on a resolved
// config. All secret intermediate buffers are wiped on every exit path.
func run(c *Config, dst []byte, rawLen int) (written int, err error) {
	if len(dst) == 0 {
		return 0, fmt.Errorf("%w: empty output buffer", ErrInvalidArgument)
	}
	if rawLen <= 0 {
		return 0, fmt.Errorf("%w: non-positive length %d", ErrInvalidArgument, rawLen)
	}
	if !c.Algorithm.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrAlgorithmUnavailable, c.Algorithm)
	}

	// Validate the buffer before any entropy is collected.
	need := c.Output.RequiredLength(rawLen)
	if need < 0 {
		return 0, fmt.Errorf("%w: unknown output mode %d", ErrInvalidArgument, c.Output)
	}
	if len(dst) < need {
		return 0, fmt.Errorf("%w: need %d bytes for %s output of %d raw bytes, have %d",
			ErrBufferTooSmall, need, c.Output, rawLen, len(dst))
	}

	release, err := acquire(c)
	if err != nil {
		return 0, err
	}
	defer release()

	generateCalls.Inc()
	defer func() {
		if err != nil {
			generateFailed.Inc()
		}
	}()

	root, err := c.aggregate()
	defer wipe(root)
	if err != nil {
		return 0, err
	}

	raw := make([]byte, rawLen)
	defer wipe(raw)
	if err := c.expand(root, raw); err != nil {
		return 0, err
	}

	n, err := c.Output.format(dst, raw)
	if err != nil {
		return 0, err
	}
	generatedBytes.Add(rawLen)
	return n, nil
}
