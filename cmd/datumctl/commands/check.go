package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/datumctl/internal/datum"
	"github.com/spf13/cobra"
)

func newHasHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "has-header FILE",
		Short: "Exit 0 when FILE starts with a recognizable datum header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			head, err := a.openHead(args[0])
			if err != nil {
				return err
			}
			if !datum.HasHeader(head) {
				return a.fail(false, datum.ErrUnsupportedFormat)
			}
			return nil
		},
	}
}

func newHasValidHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "has-valid-header FILE",
		Short: "Exit 0 when FILE starts with a valid datum header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			head, err := a.openHead(args[0])
			if err != nil {
				return err
			}
			if err := datum.Validate(head); err != nil {
				return a.fail(false, err)
			}
			return nil
		},
	}
}

func newHasInvalidHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "has-invalid-header FILE",
		Short: "Exit 1 when FILE starts with a valid datum header",
		Long: `has-invalid-header is the inverse of has-valid-header, for looping over
a set of files that must all be rejected. Unreadable content counts as
invalid; a file that cannot be opened still fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return a.fail(true, fmt.Errorf("%w: %w", datum.ErrIO, err))
			}
			defer f.Close()

			head, err := readHead(f)
			if err != nil {
				return nil
			}
			if datum.HasValidHeader(head) {
				return a.fail(false, fmt.Errorf("%s: header is valid", args[0]))
			}
			return nil
		},
	}
}

// openHead reads the first datum.HeaderSize bytes of path. Open failures are
// always printed; read failures only with --verbose.
func (a *app) openHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, a.fail(true, fmt.Errorf("%w: %w", datum.ErrIO, err))
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return nil, a.fail(false, err)
	}
	return head, nil
}

// readHead returns up to datum.HeaderSize bytes from r. Input shorter than a
// header is returned as is.
func readHead(r io.Reader) ([]byte, error) {
	buf := make([]byte, datum.HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %w", datum.ErrIO, err)
	}
	return buf[:n], nil
}
