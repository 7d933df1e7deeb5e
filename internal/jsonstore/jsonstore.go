// Package jsonstore reads and writes the JSON state files of the wizard.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimeLayout is the timestamp format stored in the state files.
const TimeLayout = "2006-01-02 15:04:05"

// Load reads path into a value of type T, starting from fallback, so fields missing
// from the file keep their fallback values.
// A missing file returns fallback. A malformed file returns fallback and logs a warning.
func Load[T any](path string, fallback T) (T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fallback, nil
	}

	v := fallback
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("ignoring malformed state file",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return fallback, nil
	}
	return v, nil
}

// Marshal encodes v as indented JSON without HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("enc.Encode() > %w", err)
	}
	return buf.Bytes(), nil
}

// Save replaces path with the JSON encoding of v.
// The data is written to a temporary file in the same directory, synced and renamed over path,
// so readers see either the old or the new content.
func Save(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write() > %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Sync() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("os.Chmod(%s) > %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("os.Rename(%s, %s) > %w", tmpPath, path, err)
	}
	return nil
}

// Time is a timestamp stored as "YYYY-MM-DD HH:MM:SS" in local time.
type Time struct {
	time.Time
}

// NewTime truncates t to the second.
func NewTime(t time.Time) Time {
	return Time{Time: t.Truncate(time.Second)}
}

func (t Time) String() string {
	return t.Format(TimeLayout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(TimeLayout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("json.Unmarshal(time) > %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("time.ParseInLocation(%s) > %w", s, err)
	}
	t.Time = parsed
	return nil
}
