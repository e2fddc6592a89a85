package rng

import (
	"crypto/hmac"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// expand stretches the root digest into exactly len(out) bytes using the
// configured strategy. Transient working state is wiped before returning on
// every path. On failure out must be considered tainted and wiped by the
// caller before anything is exposed.
func (c *Config) expand(root, out []byte) error {
	switch c.Expansion {
	case ExpandCounter:
		return c.expandCounter(root, out)
	case ExpandHKDF, ExpandXOF:
		return c.expandHKDF(root, out)
	case ExpandHMACStream:
		return c.expandHMACStream(root, out)
	default:
		return fmt.Errorf("%w: unknown expansion strategy %d", ErrInvalidArgument, c.Expansion)
	}
}

// expandCounter produces block_i = H(root || seed || counter_i), counters
// starting at 1. The seed only separates domains here, it is not a key.
func (c *Config) expandCounter(root, out []byte) error {
	h := c.Algorithm.New()
	if h == nil {
		return fmt.Errorf("%w: %d", ErrAlgorithmUnavailable, c.Algorithm)
	}

	var counter [4]byte
	block := make([]byte, 0, c.Algorithm.Size())
	defer func() { wipe(block) }()

	n := 0
	for i := uint32(1); n < len(out); i++ {
		h.Reset()
		_, _ = h.Write(root)
		if len(c.Seed) > 0 {
			_, _ = h.Write(c.Seed)
		}
		binary.BigEndian.PutUint32(counter[:], i)
		_, _ = h.Write(counter[:])
		block = h.Sum(block[:0])
		n += copy(out[n:], block)
	}
	return nil
}

// expandHKDF is RFC 5869 extract-then-expand with the root digest as input
// keying material and the seed as salt. An absent seed defaults to a zero
// salt of digest length, per the RFC. Also serves ExpandXOF.
func (c *Config) expandHKDF(root, out []byte) error {
	r := hkdf.New(c.Algorithm.New, root, c.Seed, c.Info)
	if _, err := io.ReadFull(r, out); err != nil {
		return fmt.Errorf("hkdf expansion failed: %w", err)
	}
	return nil
}

// expandHMACStream produces block_i = HMAC(key, prev || counter_i) with the
// seed as key if present, else the root digest. Simpler than HKDF, no
// extract phase.
func (c *Config) expandHMACStream(root, out []byte) error {
	key := root
	if len(c.Seed) > 0 {
		key = c.Seed
	}
	mac := hmac.New(c.Algorithm.New, key)

	var counter [4]byte
	prev := make([]byte, 0, mac.Size())
	defer func() { wipe(prev) }()

	n := 0
	for i := uint32(1); n < len(out); i++ {
		mac.Reset()
		_, _ = mac.Write(prev)
		binary.BigEndian.PutUint32(counter[:], i)
		_, _ = mac.Write(counter[:])
		prev = mac.Sum(prev[:0])
		n += copy(out[n:], prev)
	}
	return nil
}
