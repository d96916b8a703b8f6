// Package audit writes per-segment and per-window JSON reports (C9) and
// optional miss-sample files, per the schema fixed in spec.md §6.
//
// Grounded on Ribengame-hunter's StorageManager.SaveCheckpoint /
// LoadCheckpoint (json.MarshalIndent -> os.WriteFile, read-back via
// json.Unmarshal), generalized from one checkpoint file per run to one
// report file per segment/window so Resume (spec.md §4.8, §7) can skip
// completed units independently.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/engineerr"
)

// Report is the immutable SegmentReport record from spec.md §3, shared
// by both the sieve and MR regimes (spec.md §4.9: "a common report
// record type rather than a common interface").
type Report struct {
	Index      int     `json:"Index"`
	NStart     int64   `json:"NStart"`
	NEnd       int64   `json:"NEnd"`
	Covered    int64   `json:"Covered"`
	TotalEvens int64   `json:"TotalEvens"`
	Pct        float64 `json:"Pct"`
	Seconds    float64 `json:"Seconds"`
}

// SegmentPath returns the deterministic path for a segment's report,
// seg_NNNNN.json with NNNNN zero-padded to 5 digits (spec.md §6).
func SegmentPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("seg_%05d.json", index))
}

// SegmentMissesPath returns the path for a segment's optional miss list.
func SegmentMissesPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("seg_%05d_misses.txt", index))
}

// WindowPath returns the deterministic path for an MR window's report.
func WindowPath(dir string, nStart, windowEvens int64) string {
	return filepath.Join(dir, fmt.Sprintf("window_%d_%d.json", nStart, windowEvens))
}

// WindowMissesPath returns the path for an MR window's optional miss list.
func WindowMissesPath(dir string, nStart, windowEvens int64) string {
	return filepath.Join(dir, fmt.Sprintf("window_%d_%d_misses.txt", nStart, windowEvens))
}

// WriteReport serializes r as indented JSON to path.
func WriteReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return engineerr.NewIOError("marshal report", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return engineerr.NewIOError("write report "+path, err)
	}
	return nil
}

// ReadReport deserializes a Report from path, used by Resume to decide
// whether a segment/window can be skipped.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, engineerr.NewIOError("read report "+path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, engineerr.NewIOError("unmarshal report "+path, err)
	}
	return &r, nil
}

// Exists reports whether a report file is present at path, the
// Resume-mode check spec.md §4.8/§8 (S5) describes.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteMisses writes one decimal even n per line to path.
func WriteMisses(path string, misses []int64) error {
	if len(misses) == 0 {
		return nil
	}
	var b strings.Builder
	for _, n := range misses {
		b.WriteString(strconv.FormatInt(n, 10))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return engineerr.NewIOError("write misses "+path, err)
	}
	return nil
}
