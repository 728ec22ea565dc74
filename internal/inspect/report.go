package inspect

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/datumctl/internal/datum"
	"github.com/danmuck/datumctl/internal/datum/timestamp"
	"github.com/danmuck/datumctl/internal/observability"
	"github.com/dustin/go-humanize"
)

// Report is the outcome of inspecting one header. Header, Flags, Size,
// Created and CreatedAt are set only when Valid is true.
type Report struct {
	Path       string        `json:"path,omitempty" yaml:"path,omitempty"`
	Recognized bool          `json:"recognized" yaml:"recognized"`
	Valid      bool          `json:"valid" yaml:"valid"`
	Result     string        `json:"result" yaml:"result"`
	Rule       string        `json:"rule,omitempty" yaml:"rule,omitempty"`
	Header     *datum.Header `json:"header,omitempty" yaml:"header,omitempty"`
	Flags      []string      `json:"flags,omitempty" yaml:"flags,omitempty"`
	Size       string        `json:"size,omitempty" yaml:"size,omitempty"`
	Created    string        `json:"created,omitempty" yaml:"created,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Classify inspects the header at the start of data. It never fails: short
// or unrecognized input is reported as unsupported.
func Classify(data []byte, layout string) Report {
	if !datum.HasHeader(data) {
		return Report{Result: observability.ResultUnsupported}
	}
	h, err := datum.ParseHeader(data)
	if err != nil {
		report := Report{Recognized: true, Result: observability.ResultInvalid}
		var ruleErr *datum.RuleError
		if errors.As(err, &ruleErr) {
			report.Rule = ruleErr.Rule.String()
		}
		return report
	}
	return FromHeader(h, layout)
}

// FromHeader builds the report for an already decoded, valid header.
func FromHeader(h datum.Header, layout string) Report {
	if layout == "" {
		layout = timestamp.RFC3339Nano
	}
	createdAt := datum.Time(h.Timestamp)
	return Report{
		Recognized: true,
		Valid:      true,
		Result:     observability.ResultValid,
		Header:     &h,
		Flags:      h.Flags.Names(),
		Size:       humanize.IBytes(h.Size),
		Created:    timestamp.Format(layout, h.Timestamp),
		CreatedAt:  &createdAt,
	}
}

// Read inspects the first datum.HeaderSize bytes of r. Input shorter than a
// header is unsupported; any other read failure is returned wrapping
// datum.ErrIO.
func Read(r io.Reader, layout string) (Report, error) {
	var buf [datum.HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return Classify(buf[:n], layout), nil
	default:
		return Report{Result: observability.ResultIO}, fmt.Errorf("%w: %w", datum.ErrIO, err)
	}
	return Classify(buf[:], layout), nil
}

func (r Report) Headers() []string {
	return []string{"Field", "Value"}
}

func (r Report) Rows() [][]string {
	rows := make([][]string, 0, 20)
	if r.Path != "" {
		rows = append(rows, []string{"path", r.Path})
	}
	rows = append(rows, []string{"result", r.Result})
	if r.Rule != "" {
		rows = append(rows, []string{"rule", r.Rule})
	}
	h := r.Header
	if h == nil {
		return rows
	}
	return append(rows,
		[]string{"version", uintString(h.Version)},
		[]string{"flags", fmt.Sprintf("%#x %s", uint64(h.Flags), strings.Join(r.Flags, "|"))},
		[]string{"timestamp", uintString(h.Timestamp)},
		[]string{"created", r.Created},
		[]string{"opc", uintString(h.OPC)},
		[]string{"chunk_size", uintString(h.ChunkSize)},
		[]string{"network_id", uintString(h.NetworkID)},
		[]string{"size", fmt.Sprintf("%d (%s)", h.Size, r.Size)},
		[]string{"checksum", fmt.Sprintf("%#016x", h.Checksum)},
		[]string{"compression", uintString(h.Compression)},
		[]string{"encryption", uintString(h.Encryption)},
		[]string{"signature_type", uintString(h.SignatureType)},
		[]string{"signature_size", uintString(h.SignatureSize)},
		[]string{"metadata_spec", uintString(h.MetadataSpec)},
		[]string{"metadata_size", uintString(h.MetadataSize)},
	)
}

// FlagBits renders every defined flag bit with whether it is set.
type FlagBits datum.Flag

func (f FlagBits) Headers() []string {
	return []string{"Flag", "Value", "Set"}
}

func (f FlagBits) Rows() [][]string {
	all := datum.Flags()
	rows := make([][]string, 0, len(all))
	for _, flag := range all {
		set := "-"
		if datum.HasFlag(datum.Flag(f), flag) {
			set = "yes"
		}
		rows = append(rows, []string{flag.String(), uintString(uint64(flag)), set})
	}
	return rows
}

func uintString[T ~uint16 | ~uint32 | ~uint64](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}
