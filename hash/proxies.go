package hash

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

func NewBlake2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

func NewBlake2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}
