package rng

import (
	"sync"

	"github.com/maxrng/maxrng/entropy"
	"github.com/maxrng/maxrng/hash"
)

// MixingMode selects how entropy rounds are folded into the root digest.
type MixingMode uint8

const (
	// MixContinuous feeds all rounds into a single hash context and
	// finalizes once.
	MixContinuous MixingMode = iota
	// MixRoundChained finalizes every round and feeds the digest into the
	// next round's fresh context, carrying entropy forward.
	MixRoundChained
)

// ExpansionStrategy selects how the root digest is stretched to the
// requested output length.
type ExpansionStrategy uint8

const (
	// ExpandCounter hashes digest || seed || counter per output block. The
	// portable default, only needs a plain hash.
	ExpandCounter ExpansionStrategy = iota
	// ExpandHKDF is the RFC 5869 extract-then-expand construction with the
	// seed as salt. Preferred where interop matters.
	ExpandHKDF
	// ExpandHMACStream chains HMAC(key, prev || counter) blocks, keyed with
	// the seed if present, else the digest.
	ExpandHMACStream
	// ExpandXOF behaves exactly like ExpandHKDF. It is a distinct tag kept
	// for interface stability on builds without a true extendable-output
	// function.
	ExpandXOF
)

// ConcurrencyMode selects how engine invocations are serialized.
type ConcurrencyMode uint8

const (
	// ConcurrencyNone leaves serialization to the caller.
	ConcurrencyNone ConcurrencyMode = iota
	// ConcurrencyInternalLock serializes all invocations on a process-wide
	// lock.
	ConcurrencyInternalLock
	// ConcurrencyUserLock serializes invocations with the caller-supplied
	// Locker.
	ConcurrencyUserLock
)

// Complexity bounds. GenerateThreadsafe uses the lower maximum.
const (
	MinComplexity           = 1
	MaxComplexity           = 10
	MaxThreadsafeComplexity = 5
)

// Config controls a single engine invocation. The zero value of every field
// is a valid default: all-disabled sources are only useful with a preset, so
// most callers start from DefaultConfig.
//
// Config is read-only input to the engine, a call never modifies the caller's
// value.
type Config struct {
	// Sources selects the entropy sources to mix.
	Sources entropy.Toggles

	// Algorithm is the digest algorithm; 0 selects SHA2-256.
	Algorithm hash.Algorithm

	Mixing      MixingMode
	Expansion   ExpansionStrategy
	Concurrency ConcurrencyMode

	// Locker serializes the invocation under ConcurrencyUserLock.
	Locker sync.Locker

	// Seed is optional caller keying material: salt for HKDF, HMAC key for
	// the HMAC stream, domain separation for counter expansion.
	Seed []byte

	// Info is optional context bytes, used by the HKDF strategies.
	Info []byte

	// Preset applies a named security bundle, see ApplyPreset.
	Preset Preset

	// Complexity is the number of mixing rounds, clamped to [1,10].
	Complexity int

	// Output selects the output encoding.
	Output OutputMode

	// collect stands in for entropy.Collect in deterministic tests.
	collect func(entropy.Toggles) ([]entropy.Blob, error)
}

// DefaultConfig returns a config with all sources enabled and the given
// preset applied.
func DefaultConfig(preset Preset) *Config {
	c := &Config{
		Sources: entropy.AllEnabled(),
		Preset:  preset,
	}
	c.ApplyPreset()
	return c
}

func clampComplexity(complexity, max int) int {
	if complexity < MinComplexity {
		return MinComplexity
	}
	if complexity > max {
		return max
	}
	return complexity
}
