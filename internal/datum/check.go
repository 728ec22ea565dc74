package datum

import "encoding/binary"

// HasHeader reports whether data starts with something that looks like a
// datum header: at least HeaderSize bytes, Magic at offset 0 and Delimiter at
// offset 62. No other field is inspected.
func HasHeader(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}
	return [4]byte(data[offMagic:offVersion]) == Magic &&
		[2]byte(data[offDelimiter:HeaderSize]) == Delimiter
}

// HasValidHeader reports whether data starts with a recognized and
// internally consistent datum header. Only the first HeaderSize bytes are
// read; the payload is not inspected.
func HasValidHeader(data []byte) bool {
	return Validate(data) == nil
}

// Validate checks the header at the start of data and returns nil when it is
// valid. A buffer that fails recognition yields ErrUnsupportedFormat; any
// other failure is a *RuleError naming the first violated rule.
//
// A Compromised header is always invalid. A Draft header skips every check
// after the compromised one.
func Validate(data []byte) error {
	if !HasHeader(data) {
		return ErrUnsupportedFormat
	}
	le := binary.LittleEndian

	if le.Uint16(data[offVersion:]) < MinVersion {
		return &RuleError{Rule: RuleVersion}
	}

	flags := Flag(le.Uint64(data[offFlags:]))
	if HasFlag(flags, FlagCompromised) {
		return &RuleError{Rule: RuleCompromised}
	}
	if HasFlag(flags, FlagDraft) {
		return nil
	}

	if le.Uint64(data[offTimestamp:]) < MagicDate {
		return &RuleError{Rule: RuleTimestamp}
	}
	if !agrees(flags, FlagOPC, le.Uint32(data[offOPC:]) != 0) {
		return &RuleError{Rule: RuleOPC}
	}
	if !agrees(flags, FlagChunked, le.Uint16(data[offChunkSize:]) != 0) {
		return &RuleError{Rule: RuleChunkSize}
	}
	if !agrees(flags, FlagNetwork, le.Uint32(data[offNetworkID:]) != 0) {
		return &RuleError{Rule: RuleNetworkID}
	}
	// Empty is inverted: the flag declares the absence of a payload.
	if !agrees(flags, FlagEmpty, le.Uint64(data[offSize:]) == 0) {
		return &RuleError{Rule: RuleSize}
	}
	if !agrees(flags, FlagChecksum, [8]byte(data[offChecksum:offCompression]) != empty) {
		return &RuleError{Rule: RuleChecksum}
	}
	if !agrees(flags, FlagCompressed, le.Uint16(data[offCompression:]) != 0) {
		return &RuleError{Rule: RuleCompression}
	}
	if !agrees(flags, FlagEncrypted, le.Uint16(data[offEncryption:]) != 0) {
		return &RuleError{Rule: RuleEncryption}
	}

	// Signature and metadata: only the type/spec field is required when the
	// flag is set, but either field being non-zero requires the flag.
	sigType := le.Uint16(data[offSignatureType:])
	sigSize := le.Uint16(data[offSignatureSize:])
	if HasFlag(flags, FlagSigned) && sigType == 0 {
		return &RuleError{Rule: RuleSignature}
	}
	if !HasFlag(flags, FlagSigned) && (sigType > 0 || sigSize > 0) {
		return &RuleError{Rule: RuleSignature}
	}

	metaSpec := le.Uint16(data[offMetadataSpec:])
	metaSize := le.Uint32(data[offMetadataSize:])
	if HasFlag(flags, FlagMetadata) && metaSpec == 0 {
		return &RuleError{Rule: RuleMetadata}
	}
	if !HasFlag(flags, FlagMetadata) && (metaSpec > 0 || metaSize > 0) {
		return &RuleError{Rule: RuleMetadata}
	}

	return nil
}

// agrees reports whether flag presence in flags matches present.
func agrees(flags, flag Flag, present bool) bool {
	return HasFlag(flags, flag) == present
}
