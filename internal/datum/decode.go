package datum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// DecodeHeader reads exactly HeaderSize bytes from r and returns the decoded
// header. A short or failed read wraps ErrIO; unrecognized bytes return
// ErrUnsupportedFormat; an inconsistent header returns a *RuleError wrapping
// ErrInvalidHeader.
//
// The caller owns r and is responsible for closing it.
func DecodeHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return ParseHeader(buf[:])
}

// ParseHeader validates and decodes the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if err := Validate(data); err != nil {
		return Header{}, err
	}
	return unpack(data), nil
}

func unpack(b []byte) Header {
	le := binary.LittleEndian
	return Header{
		Version:       le.Uint16(b[offVersion:]),
		Flags:         Flag(le.Uint64(b[offFlags:])),
		Timestamp:     le.Uint64(b[offTimestamp:]),
		OPC:           le.Uint32(b[offOPC:]),
		ChunkSize:     le.Uint16(b[offChunkSize:]),
		NetworkID:     le.Uint32(b[offNetworkID:]),
		Size:          le.Uint64(b[offSize:]),
		Checksum:      le.Uint64(b[offChecksum:]),
		Compression:   le.Uint16(b[offCompression:]),
		Encryption:    le.Uint16(b[offEncryption:]),
		SignatureType: le.Uint16(b[offSignatureType:]),
		SignatureSize: le.Uint16(b[offSignatureSize:]),
		MetadataSpec:  le.Uint16(b[offMetadataSpec:]),
		MetadataSize:  le.Uint32(b[offMetadataSize:]),
	}
}
