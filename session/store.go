// Package session persists the files collected during one session so a later
// process can lint them together.
package session

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/logging"
	"github.com/grovetools/hooklint/util/sanitize"
)

// DefaultPrefix is the record filename prefix used when none is configured.
const DefaultPrefix = "hooklint"

// Store keeps one record file per session under a shared directory. Each
// record holds one path per line, in first-insertion order, without duplicates.
type Store struct {
	dir    string
	prefix string
	logger *logrus.Entry
}

// NewStore creates a Store rooted at dir. An empty dir selects the platform
// temporary directory.
func NewStore(dir, prefix string) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		dir:    dir,
		prefix: prefix,
		logger: logging.NewLogger("session"),
	}
}

// Dir returns the directory holding record files.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the record file for sessionID.
func (s *Store) Path(sessionID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.txt", s.prefix, sanitize.ForSessionKey(sessionID)))
}

// Record appends path to the session's record unless it is already present.
func (s *Store) Record(sessionID, path string) error {
	if sessionID == "" {
		return errors.InvalidInput("session id cannot be empty")
	}
	if path == "" {
		return errors.InvalidInput("file path cannot be empty")
	}
	if strings.ContainsAny(path, "\r\n") {
		return errors.InvalidInput("file path cannot contain line breaks").WithDetail("path", path)
	}

	record := s.Path(sessionID)

	existing, err := os.ReadFile(record)
	if err != nil && !os.IsNotExist(err) {
		return errors.SessionStore("read", record, err)
	}
	for _, line := range splitLines(existing) {
		if line == path {
			s.logger.WithField("path", path).Debug("Path already recorded")
			return nil
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.SessionStore("create directory", s.dir, err)
	}

	f, err := os.OpenFile(record, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.SessionStore("open", record, err)
	}
	defer f.Close()

	if _, err := f.WriteString(path + "\n"); err != nil {
		return errors.SessionStore("append", record, err)
	}

	s.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"path":    path,
	}).Debug("Recorded path")
	return nil
}

// Drain returns the recorded paths for sessionID and deletes the record.
// The record is claimed by renaming it first, so of two concurrent drains
// only one sees the paths. A missing record yields an empty list.
func (s *Store) Drain(sessionID string) ([]string, error) {
	if sessionID == "" {
		return nil, errors.InvalidInput("session id cannot be empty")
	}

	record := s.Path(sessionID)
	claim := fmt.Sprintf("%s.%s.claim", record, uuid.NewString())

	if err := os.Rename(record, claim); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.SessionStore("claim", record, err)
	}

	data, err := os.ReadFile(claim)
	if rmErr := os.Remove(claim); rmErr != nil && !os.IsNotExist(rmErr) {
		s.logger.WithError(rmErr).WithField("claim", claim).Warn("Failed to remove claimed record")
	}
	if err != nil {
		return nil, errors.SessionStore("read", claim, err)
	}

	paths := splitLines(data)
	s.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"count":   len(paths),
	}).Debug("Drained record")
	return paths, nil
}

// splitLines returns the non-empty lines of data.
func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSuffix(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
