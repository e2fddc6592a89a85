package hash

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Algorithm identifies a digest algorithm usable by the engine. The engine
// supports the three digest widths 20, 32 and 64 bytes.
type Algorithm uint8

const (
	SHA1 Algorithm = 1 + iota
	SHA2_256
	SHA2_512
	SHA3_256
	SHA3_512
	BLAKE2B_256
	BLAKE2B_512
)

var (
	attributes = map[Algorithm][]uint8{
		// block size, output size, security strength - in bytes
		SHA1:        {64, 20, 10},
		SHA2_256:    {64, 32, 16},
		SHA2_512:    {128, 64, 32},
		SHA3_256:    {136, 32, 16},
		SHA3_512:    {72, 64, 32},
		BLAKE2B_256: {128, 32, 16},
		BLAKE2B_512: {128, 64, 32},
	}

	functions = map[Algorithm]func() hash.Hash{
		SHA1:        sha1.New,
		SHA2_256:    sha256.New,
		SHA2_512:    sha512.New,
		SHA3_256:    sha3.New256,
		SHA3_512:    sha3.New512,
		BLAKE2B_256: NewBlake2b256,
		BLAKE2B_512: NewBlake2b512,
	}

	// ordered by strength and establishment
	orderedByRecommendation = []Algorithm{
		SHA3_512,
		SHA2_512,
		BLAKE2B_512,
		SHA3_256,
		SHA2_256,
		BLAKE2B_256,
		SHA1,
	}

	names = map[Algorithm]string{
		SHA1:        "SHA1",
		SHA2_256:    "SHA2-256",
		SHA2_512:    "SHA2-512",
		SHA3_256:    "SHA3-256",
		SHA3_512:    "SHA3-512",
		BLAKE2B_256: "Blake2b-256",
		BLAKE2B_512: "Blake2b-512",
	}
)

// Valid reports whether the algorithm is known.
func (a Algorithm) Valid() bool {
	_, ok := attributes[a]
	return ok
}

// BlockSize returns the internal block size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) BlockSize() uint8 {
	att, ok := attributes[a]
	if !ok {
		return 0
	}
	return att[0]
}

// Size returns the digest size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() uint8 {
	att, ok := attributes[a]
	if !ok {
		return 0
	}
	return att[1]
}

// SecurityStrength returns the (collision) security strength in bytes, or 0
// for an unknown algorithm.
func (a Algorithm) SecurityStrength() uint8 {
	att, ok := attributes[a]
	if !ok {
		return 0
	}
	return att[2]
}

func (a Algorithm) String() string {
	return a.Name()
}

// Name returns the canonical name of the algorithm, or "" if unknown.
func (a Algorithm) Name() string {
	name, ok := names[a]
	if !ok {
		return ""
	}
	return name
}

// New returns a fresh hash context, or nil for an unknown algorithm.
func (a Algorithm) New() hash.Hash {
	fn, ok := functions[a]
	if !ok {
		return nil
	}
	return fn()
}

// Recommended returns the strongest recommended algorithm that provides at
// least the given security strength in bits.
func Recommended(strengthInBits uint16) Algorithm {
	strengthInBytes := uint8(strengthInBits / 8)
	if strengthInBits%8 != 0 {
		strengthInBytes++
	}
	if strengthInBytes == 0 {
		strengthInBytes = uint8(0xFF)
	}
	chosenAlg := orderedByRecommendation[0]
	for _, alg := range orderedByRecommendation {
		strength := alg.SecurityStrength()
		if strength < strengthInBytes {
			break
		}
		chosenAlg = alg
		if strength == strengthInBytes {
			break
		}
	}
	return chosenAlg
}
