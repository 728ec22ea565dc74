// Package datumtest builds raw datum headers for tests and fixtures.
package datumtest

import (
	"encoding/binary"

	"github.com/danmuck/datumctl/internal/datum"
)

// Fixture file names written by cmd/datumgen under testdata/v1.
const (
	ValidMinimal          = "valid-header-minimal.cdt"
	ValidFullFeatured     = "valid-header-full-featured.cdt"
	InvalidFullFeatured   = "invalid-header-full-featured.cdt"
	FullFeaturedTimestamp = datum.MagicDate
)

// Fixtures maps fixture names to whether they hold a valid header.
var Fixtures = map[string]bool{
	ValidMinimal:        true,
	ValidFullFeatured:   true,
	InvalidFullFeatured: false,
}

// Raw is a mutable 64-byte header image.
type Raw []byte

// New returns a zeroed header with magic, version and delimiter set.
func New() Raw {
	r := make(Raw, datum.HeaderSize)
	copy(r[0:4], datum.Magic[:])
	binary.LittleEndian.PutUint16(r[4:6], datum.Version)
	copy(r[62:64], datum.Delimiter[:])
	return r
}

// Minimal returns the smallest valid non-draft header: DatumEmpty at the
// genesis timestamp.
func Minimal() Raw {
	return New().SetFlag(datum.FlagEmpty).Timestamp(datum.MagicDate)
}

// FullFeatured returns a valid header using every feature with a paired field.
func FullFeatured() Raw {
	return New().
		SetFlag(datum.FlagChecksum | datum.FlagOPC | datum.FlagCompressed |
			datum.FlagEncrypted | datum.FlagSigned | datum.FlagChunked |
			datum.FlagMetadata | datum.FlagNetwork).
		Timestamp(FullFeaturedTimestamp).
		OPC(2).
		ChunkSize(3).
		NetworkID(4).
		Size(5).
		Checksum(1234567890).
		Compression(6).
		Encryption(7).
		SignatureType(8).
		SignatureSize(9).
		MetadataSpec(10).
		MetadataSize(11)
}

// InvalidFullFeaturedHeader is FullFeatured without DatumMetadata, so it fails on
// the last rule checked.
func InvalidFullFeaturedHeader() Raw {
	return FullFeatured().RemoveFlag(datum.FlagMetadata)
}

func (r Raw) flags() uint64 { return binary.LittleEndian.Uint64(r[6:14]) }

func (r Raw) SetFlag(f datum.Flag) Raw {
	binary.LittleEndian.PutUint64(r[6:14], r.flags()|uint64(f))
	return r
}

func (r Raw) RemoveFlag(f datum.Flag) Raw {
	binary.LittleEndian.PutUint64(r[6:14], r.flags()&^uint64(f))
	return r
}

func (r Raw) HasFlag(f datum.Flag) bool {
	return r.flags()&uint64(f) != 0
}

func (r Raw) Version(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[4:6], v)
	return r
}

func (r Raw) Timestamp(ns uint64) Raw {
	binary.LittleEndian.PutUint64(r[14:22], ns)
	return r
}

func (r Raw) OPC(v uint32) Raw {
	binary.LittleEndian.PutUint32(r[22:26], v)
	return r
}

func (r Raw) ChunkSize(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[26:28], v)
	return r
}

func (r Raw) NetworkID(v uint32) Raw {
	binary.LittleEndian.PutUint32(r[28:32], v)
	return r
}

func (r Raw) Size(v uint64) Raw {
	binary.LittleEndian.PutUint64(r[32:40], v)
	return r
}

func (r Raw) Checksum(v uint64) Raw {
	binary.LittleEndian.PutUint64(r[40:48], v)
	return r
}

func (r Raw) Compression(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[48:50], v)
	return r
}

func (r Raw) Encryption(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[50:52], v)
	return r
}

func (r Raw) SignatureType(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[52:54], v)
	return r
}

func (r Raw) SignatureSize(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[54:56], v)
	return r
}

func (r Raw) MetadataSpec(v uint16) Raw {
	binary.LittleEndian.PutUint16(r[56:58], v)
	return r
}

func (r Raw) MetadataSize(v uint32) Raw {
	binary.LittleEndian.PutUint32(r[58:62], v)
	return r
}

// Bytes returns a copy of the header image.
func (r Raw) Bytes() []byte {
	out := make([]byte, len(r))
	copy(out, r)
	return out
}
