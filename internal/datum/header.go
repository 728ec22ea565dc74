package datum

import "time"

// Header is a decoded datum header. Fields whose feature flag is clear are
// zero in a valid header.
type Header struct {
	// Version is the format revision.
	Version uint16 `json:"version" yaml:"version"`

	// Flags is the set of features used by the datum.
	Flags Flag `json:"flags" yaml:"flags"`

	// Timestamp is the creation time in nanoseconds since the Unix epoch.
	Timestamp uint64 `json:"timestamp" yaml:"timestamp"`

	// OPC is the operation counter, set only with FlagOPC.
	OPC uint32 `json:"opc" yaml:"opc"`

	// ChunkSize is the payload chunk size, set only with FlagChunked.
	ChunkSize uint16 `json:"chunk_size" yaml:"chunk_size"`

	// NetworkID identifies the source network, set only with FlagNetwork.
	NetworkID uint32 `json:"network_id" yaml:"network_id"`

	// Size is the total payload size. Zero only with FlagEmpty.
	Size uint64 `json:"size" yaml:"size"`

	// Checksum is the payload integrity value, set only with FlagChecksum.
	Checksum uint64 `json:"checksum" yaml:"checksum"`

	Compression   uint16 `json:"compression" yaml:"compression"`
	Encryption    uint16 `json:"encryption" yaml:"encryption"`
	SignatureType uint16 `json:"signature_type" yaml:"signature_type"`
	SignatureSize uint16 `json:"signature_size" yaml:"signature_size"`
	MetadataSpec  uint16 `json:"metadata_spec" yaml:"metadata_spec"`
	MetadataSize  uint32 `json:"metadata_size" yaml:"metadata_size"`
}

// Has reports whether flag is set on the header.
func (h Header) Has(flag Flag) bool {
	return HasFlag(h.Flags, flag)
}

// Time converts a header timestamp into a UTC time.Time.
func Time(ns uint64) time.Time {
	return time.Unix(int64(ns/1e9), int64(ns%1e9)).UTC()
}
