package datum

import (
	"fmt"
	"math/bits"
)

// Flag is a single feature bit of the header flags field. A header carries
// any combination of flags OR-ed together.
type Flag uint64

const (
	FlagInvalid Flag = 1 << iota
	FlagDraft
	FlagEmpty
	FlagChecksum
	FlagOPC
	FlagCompressed
	FlagEncrypted
	FlagExtractable
	FlagSigned
	FlagChunked
	FlagMetadata
	FlagCompromised
	FlagBigEndian
	FlagNetwork
)

// numFlags is the count of defined flag bits (bit 0 through bit 13).
const numFlags = 14

var flagNames = [numFlags]string{
	"DATUM_INVALID",
	"DATUM_DRAFT",
	"DATUM_EMPTY",
	"DATUM_CHECKSUM",
	"DATUM_OPC",
	"DATUM_COMPRESSED",
	"DATUM_ENCRYPTED",
	"DATUM_EXTRACTABLE",
	"DATUM_SIGNED",
	"DATUM_CHUNKED",
	"DATUM_METADATA",
	"DATUM_COMPROMISED",
	"DATUM_BIG_ENDIAN",
	"DATUM_NETWORK",
}

// HasFlag reports whether candidate is set in flags.
func HasFlag(flags, candidate Flag) bool {
	return flags&candidate != 0
}

// ParseFlag converts a raw single-bit value into a known Flag.
func ParseFlag(v uint64) (Flag, error) {
	if bits.OnesCount64(v) != 1 || bits.TrailingZeros64(v) >= numFlags {
		return 0, fmt.Errorf("%w: %#x", ErrUnknownFlag, v)
	}
	return Flag(v), nil
}

// Flags returns every defined flag in bit order.
func Flags() []Flag {
	out := make([]Flag, numFlags)
	for i := range out {
		out[i] = 1 << i
	}
	return out
}

// String returns the canonical flag name for a single known bit. Other
// values are rendered as a hex bitset.
func (f Flag) String() string {
	if bits.OnesCount64(uint64(f)) == 1 {
		if i := bits.TrailingZeros64(uint64(f)); i < numFlags {
			return flagNames[i]
		}
	}
	return fmt.Sprintf("Flag(%#x)", uint64(f))
}

// Names lists the names of the known flags set in f. Unknown bits are ignored.
func (f Flag) Names() []string {
	names := make([]string, 0, bits.OnesCount64(uint64(f)))
	for i := 0; i < numFlags; i++ {
		if f&(1<<i) != 0 {
			names = append(names, flagNames[i])
		}
	}
	return names
}
