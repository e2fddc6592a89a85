package rng

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// OutputMode selects the encoding of the generated bytes.
type OutputMode uint8

const (
	OutputRaw OutputMode = iota
	OutputHex
	OutputBase64
)

func (m OutputMode) String() string {
	switch m {
	case OutputRaw:
		return "raw"
	case OutputHex:
		return "hex"
	case OutputBase64:
		return "base64"
	default:
		return "unknown"
	}
}

// RequiredLength returns the exact output buffer length needed to format
// rawLen generated bytes, or -1 for an unknown mode.
func (m OutputMode) RequiredLength(rawLen int) int {
	switch m {
	case OutputRaw:
		return rawLen
	case OutputHex:
		return hex.EncodedLen(rawLen)
	case OutputBase64:
		return base64.StdEncoding.EncodedLen(rawLen)
	default:
		return -1
	}
}

// format writes the encoded form of src into dst and returns the number of
// bytes written. If dst is shorter than the required length nothing is
// written.
func (m OutputMode) format(dst, src []byte) (int, error) {
	need := m.RequiredLength(len(src))
	if need < 0 {
		return 0, fmt.Errorf("%w: unknown output mode %d", ErrInvalidArgument, m)
	}
	if len(dst) < need {
		return 0, fmt.Errorf("%w: need %d bytes for %s output of %d raw bytes, have %d",
			ErrBufferTooSmall, need, m, len(src), len(dst))
	}

	switch m {
	case OutputRaw:
		return copy(dst, src), nil
	case OutputHex:
		return hex.Encode(dst, src), nil
	default:
		base64.StdEncoding.Encode(dst, src)
		return need, nil
	}
}
