// Package scan walks a directory tree and classifies the header of every
// regular file in it.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/danmuck/datumctl/internal/inspect"
	logs "github.com/danmuck/datumctl/internal/logging"
	"github.com/danmuck/datumctl/internal/observability"
)

// MetricsSource labels header checks recorded by the scanner.
const MetricsSource = "scan"

type Options struct {
	// FollowSymlinks inspects symlinked regular files. Symlinked
	// directories are never descended into.
	FollowSymlinks bool
	// MaxDepth limits recursion below root; 0 means unlimited.
	MaxDepth int
	// TimeLayout formats entry creation times.
	TimeLayout string
}

type Entry struct {
	Path    string `json:"path" yaml:"path"`
	Result  string `json:"result" yaml:"result"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Created string `json:"created,omitempty" yaml:"created,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

type Report struct {
	Root    string         `json:"root" yaml:"root"`
	Entries []Entry        `json:"entries" yaml:"entries"`
	Counts  map[string]int `json:"counts" yaml:"counts"`
}

// AllValid reports whether every scanned file holds a valid header.
func (r Report) AllValid() bool {
	return r.Counts[observability.ResultValid] == len(r.Entries)
}

func (r Report) Headers() []string {
	return []string{"Path", "Result", "Rule", "Created"}
}

func (r Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		detail := e.Rule
		if e.Error != "" {
			detail = e.Error
		}
		rows = append(rows, []string{e.Path, e.Result, detail, e.Created})
	}
	return rows
}

// Summary renders the per-result counts as a table.
func (r Report) Summary() SummaryTable {
	return SummaryTable(r.Counts)
}

type SummaryTable map[string]int

func (s SummaryTable) Headers() []string {
	return []string{"Result", "Files"}
}

func (s SummaryTable) Rows() [][]string {
	order := []string{
		observability.ResultValid,
		observability.ResultInvalid,
		observability.ResultUnsupported,
		observability.ResultIO,
	}
	rows := make([][]string, 0, len(order))
	for _, result := range order {
		rows = append(rows, []string{result, strconv.Itoa(s[result])})
	}
	return rows
}

// Dir classifies every regular file under root. Per-file failures are
// recorded as entries; only a failure to read root itself or a cancelled
// ctx is returned as an error. Entries are sorted by path.
func Dir(ctx context.Context, root string, opts Options) (Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Report{}, fmt.Errorf("scan root failed (%s): %w", root, err)
	}
	if !info.IsDir() {
		return Report{}, fmt.Errorf("scan root is not a directory: %s", root)
	}

	report := Report{Root: root, Entries: []Entry{}, Counts: map[string]int{}}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			report.add(Entry{Path: path, Result: observability.ResultIO, Error: walkErr.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && opts.MaxDepth > 0 && depth(root, path) >= opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		mode := d.Type()
		if mode&fs.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				return nil
			}
			target, err := os.Stat(path)
			if err != nil {
				report.add(Entry{Path: path, Result: observability.ResultIO, Error: err.Error()})
				return nil
			}
			mode = target.Mode().Type()
		}
		if !mode.IsRegular() {
			return nil
		}
		report.add(File(path, opts.TimeLayout))
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("scan walk failed (%s): %w", root, err)
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Path < report.Entries[j].Path
	})
	logs.Debugf("scan: root=%s files=%d valid=%d", root, len(report.Entries), report.Counts[observability.ResultValid])
	return report, nil
}

// File classifies a single file.
func File(path, layout string) Entry {
	f, err := os.Open(path)
	if err != nil {
		return Entry{Path: path, Result: observability.ResultIO, Error: err.Error()}
	}
	defer f.Close()

	r, err := inspect.Read(f, layout)
	entry := Entry{Path: path, Result: r.Result, Rule: r.Rule, Created: r.Created}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}

func (r *Report) add(e Entry) {
	r.Entries = append(r.Entries, e)
	r.Counts[e.Result]++
	observability.RecordHeaderCheck(MetricsSource, e.Result, e.Rule)
}

// depth counts path elements of path below root; a direct child is 1.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
