package rng

import (
	"fmt"
	"io"

	"github.com/maxrng/maxrng/entropy"
	"github.com/maxrng/maxrng/log"
)

// aggregate collects the enabled sources over the configured number of
// rounds and folds them into the root digest. The caller owns the returned
// digest and must wipe it.
//
// Individual source failures degrade the result but never abort it. Only an
// invocation where no source contributed a single byte across all rounds
// fails, the engine never finalizes a hash over nothing.
func (c *Config) aggregate() ([]byte, error) {
	collect := c.collect
	if collect == nil {
		collect = entropy.Collect
	}

	contributed := 0
	feed := func(h io.Writer) {
		blobs, report := collect(c.Sources)
		if report != nil {
			log.Debugf("rng: entropy collection degraded: %s", report)
		}
		for _, blob := range blobs {
			_, _ = h.Write(blob.Data)
			contributed += len(blob.Data)
			wipe(blob.Data)
		}
	}

	switch c.Mixing {
	case MixContinuous:
		h := c.Algorithm.New()
		if h == nil {
			return nil, fmt.Errorf("%w: %d", ErrAlgorithmUnavailable, c.Algorithm)
		}
		for round := 0; round < c.Complexity; round++ {
			feed(h)
		}
		if contributed == 0 {
			return nil, ErrNoEntropy
		}
		return h.Sum(nil), nil

	case MixRoundChained:
		var digest []byte
		for round := 0; round < c.Complexity; round++ {
			h := c.Algorithm.New()
			if h == nil {
				wipe(digest)
				return nil, fmt.Errorf("%w: %d", ErrAlgorithmUnavailable, c.Algorithm)
			}
			if digest != nil {
				_, _ = h.Write(digest)
				wipe(digest)
			}
			feed(h)
			digest = h.Sum(nil)
		}
		if contributed == 0 {
			wipe(digest)
			return nil, ErrNoEntropy
		}
		return digest, nil

	default:
		return nil, fmt.Errorf("%w: unknown mixing mode %d", ErrInvalidArgument, c.Mixing)
	}
}
