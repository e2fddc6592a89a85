package rng

import (
	"github.com/maxrng/maxrng/entropy"
	"github.com/maxrng/maxrng/hash"
)

// Preset is a named bundle of security defaults. The zero value is
// PresetBalanced.
type Preset uint8

const (
	PresetBalanced Preset = iota
	PresetFast
	PresetSecure
)

func (p Preset) String() string {
	switch p {
	case PresetBalanced:
		return "balanced"
	case PresetFast:
		return "fast"
	case PresetSecure:
		return "secure"
	default:
		return "unknown"
	}
}

// widestDigest is the largest digest width the engine supports, in bytes.
const widestDigest = 64

// ApplyPreset applies the config's preset. Applying is idempotent and
// complexity is only ever raised to the preset floor, never lowered.
//
//   - fast: disables the slow sources (audio, network, disk), forces the
//     fastest hash and continuous mixing, floor 1.
//   - balanced: keeps the caller's source selection, defaults the hash to
//     SHA2-256, floor 2.
//   - secure: enables all sources, forces a 64 byte digest and round-chained
//     mixing, floor 3. A caller-chosen algorithm that already has the widest
//     digest is kept.
func (c *Config) ApplyPreset() {
	switch c.Preset {
	case PresetFast:
		c.Sources.Audio = false
		c.Sources.Network = false
		c.Sources.Disk = false
		c.Algorithm = hash.SHA1
		c.Mixing = MixContinuous
		c.Complexity = raiseTo(c.Complexity, 1)
	case PresetBalanced:
		if c.Algorithm == 0 {
			c.Algorithm = hash.SHA2_256
		}
		c.Complexity = raiseTo(c.Complexity, 2)
	case PresetSecure:
		c.Sources = entropy.AllEnabled()
		if c.Algorithm.Size() < widestDigest {
			c.Algorithm = hash.SHA2_512
		}
		c.Mixing = MixRoundChained
		c.Complexity = raiseTo(c.Complexity, 3)
	}
}

func raiseTo(complexity, floor int) int {
	if complexity < floor {
		return floor
	}
	if complexity > MaxComplexity {
		return MaxComplexity
	}
	return complexity
}
