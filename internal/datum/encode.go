package datum

import "encoding/binary"

// EncodeHeader writes h into the fixed wire layout with Magic and Delimiter
// in place. It does not validate h.
func EncodeHeader(h Header) [HeaderSize]byte {
	var buf [HeaderSize]byte
	le := binary.LittleEndian
	copy(buf[offMagic:], Magic[:])
	le.PutUint16(buf[offVersion:], h.Version)
	le.PutUint64(buf[offFlags:], uint64(h.Flags))
	le.PutUint64(buf[offTimestamp:], h.Timestamp)
	le.PutUint32(buf[offOPC:], h.OPC)
	le.PutUint16(buf[offChunkSize:], h.ChunkSize)
	le.PutUint32(buf[offNetworkID:], h.NetworkID)
	le.PutUint64(buf[offSize:], h.Size)
	le.PutUint64(buf[offChecksum:], h.Checksum)
	le.PutUint16(buf[offCompression:], h.Compression)
	le.PutUint16(buf[offEncryption:], h.Encryption)
	le.PutUint16(buf[offSignatureType:], h.SignatureType)
	le.PutUint16(buf[offSignatureSize:], h.SignatureSize)
	le.PutUint16(buf[offMetadataSpec:], h.MetadataSpec)
	le.PutUint32(buf[offMetadataSize:], h.MetadataSize)
	copy(buf[offDelimiter:], Delimiter[:])
	return buf
}
