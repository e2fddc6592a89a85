package rng

// wipe zeroes b. All buffers holding the root digest, expansion working
// state or unformatted output are wiped before their storage is released,
// on success and on failure.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
