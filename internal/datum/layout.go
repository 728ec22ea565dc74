package datum

// Header layout (64 bytes). All integer fields are little-endian.
//
//	 0 ..  3  magic          [4]byte
//	 4 ..  5  version        u16
//	 6 .. 13  flags          u64
//	14 .. 21  timestamp      u64 (ns since Unix epoch)
//	22 .. 25  opc            u32
//	26 .. 27  chunk_size     u16
//	28 .. 31  network_id     u32
//	32 .. 39  size           u64
//	40 .. 47  checksum       u64
//	48 .. 49  compression    u16
//	50 .. 51  encryption     u16
//	52 .. 53  signature_type u16
//	54 .. 55  signature_size u16
//	56 .. 57  metadata_spec  u16
//	58 .. 61  metadata_size  u32
//	62 .. 63  delimiter      [2]byte
const (
	// Version is the format revision written by this package.
	Version uint16 = 1

	// MinVersion is the lowest version accepted by validation.
	MinVersion uint16 = 1

	// HeaderSize is the exact size of a datum header.
	HeaderSize = 64

	// MagicDate is the genesis timestamp. A non-draft header with an older
	// timestamp is invalid.
	MagicDate uint64 = 1652155382000000001
)

const (
	offMagic         = 0
	offVersion       = 4
	offFlags         = 6
	offTimestamp     = 14
	offOPC           = 22
	offChunkSize     = 26
	offNetworkID     = 28
	offSize          = 32
	offChecksum      = 40
	offCompression   = 48
	offEncryption    = 50
	offSignatureType = 52
	offSignatureSize = 54
	offMetadataSpec  = 56
	offMetadataSize  = 58
	offDelimiter     = 62
)

var (
	// Magic identifies a datum header at offset 0.
	Magic = [4]byte{0xA7, 0xF6, 0xE5, 0xD4}

	// Delimiter marks the end of a datum header at offset 62.
	Delimiter = [2]byte{0xA6, 0xE5}

	empty = [8]byte{}
)
