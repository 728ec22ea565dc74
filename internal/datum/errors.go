package datum

import (
	"errors"
	"fmt"
)

var (
	Err                  = errors.New("datum")
	ErrIO                = fmt.Errorf("%w: i/o", Err)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", Err)
	ErrInvalidHeader     = fmt.Errorf("%w: invalid header", Err)
	ErrUnknownFlag       = fmt.Errorf("%w: unknown flag", Err)
)

// Rule names one validation step.
type Rule uint8

const (
	RuleVersion Rule = iota + 1
	RuleCompromised
	RuleTimestamp
	RuleOPC
	RuleChunkSize
	RuleNetworkID
	RuleSize
	RuleChecksum
	RuleCompression
	RuleEncryption
	RuleSignature
	RuleMetadata
)

var ruleNames = map[Rule]string{
	RuleVersion:     "version",
	RuleCompromised: "compromised",
	RuleTimestamp:   "timestamp",
	RuleOPC:         "opc",
	RuleChunkSize:   "chunk_size",
	RuleNetworkID:   "network_id",
	RuleSize:        "size",
	RuleChecksum:    "checksum",
	RuleCompression: "compression",
	RuleEncryption:  "encryption",
	RuleSignature:   "signature",
	RuleMetadata:    "metadata",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

// RuleError reports the validation rule a recognized header violated.
type RuleError struct {
	Rule Rule
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("datum: invalid header: %s", e.Rule)
}

func (e *RuleError) Unwrap() error {
	return ErrInvalidHeader
}
