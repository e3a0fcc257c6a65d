// Package store persists saved commands as a JSON object mapping alias names
// to command lines.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// Entry is a single saved command.
type Entry struct {
	Name        string
	CommandLine string
}

// Store provides CRUD over the saved-command file. Every mutating operation
// reads the file, applies the change in memory and writes the whole map back
// before returning.
type Store struct {
	path string
	log  zerolog.Logger
	sort func([]string)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recoverable load problems.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithSorter overrides the name ordering used by List.
func WithSorter(sort func([]string)) Option {
	return func(s *Store) { s.sort = sort }
}

// New returns a Store backed by the JSON file at path. The file is not
// touched until the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		log:  zerolog.Nop(),
		sort: LocaleSorter(""),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the command map. A missing, empty or unparsable file yields an
// empty map: a corrupt store is treated as "no commands yet". Any other read
// failure is returned so that a later Save never replaces a file it could not
// read.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read commands file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("commands file unreadable; starting empty")
		return map[string]string{}, nil
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// Save writes m as 4-space indented JSON, replacing the file atomically: on
// error the previous contents are left in place.
func (s *Store) Save(m map[string]string) error {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create commands dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write commands: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync commands: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close commands: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod commands: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace commands file: %w", err)
	}
	return nil
}

// Add saves tokens, joined by single spaces, under name. An existing name is
// never overwritten.
func (s *Store) Add(name string, tokens []string) (Entry, error) {
	if name == "" {
		return Entry{}, apperr.New(apperr.EmptyInput, "You must provide a command name.")
	}
	commandLine := strings.Join(lo.Filter(tokens, func(t string, _ int) bool {
		return strings.TrimSpace(t) != ""
	}), " ")
	if commandLine == "" {
		return Entry{}, apperr.New(apperr.EmptyInput, "You must provide a command for '%s'.", name)
	}

	m, err := s.Load()
	if err != nil {
		return Entry{}, err
	}
	if _, ok := m[name]; ok {
		return Entry{}, apperr.New(apperr.DuplicateName, "The name '%s' already exists.", name)
	}

	m[name] = commandLine
	if err := s.Save(m); err != nil {
		return Entry{}, apperr.Wrap(apperr.Internal, err, "Failed to save commands")
	}
	return Entry{Name: name, CommandLine: commandLine}, nil
}

// Remove deletes name from the store.
func (s *Store) Remove(name string) error {
	m, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := m[name]; !ok {
		return notFound(name)
	}
	delete(m, name)
	if err := s.Save(m); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Failed to save commands")
	}
	return nil
}

// Rename moves the command saved under oldName to newName.
func (s *Store) Rename(oldName, newName string) error {
	if oldName == newName {
		return apperr.New(apperr.SameName, "Old name and new name cannot be the same.")
	}
	m, err := s.Load()
	if err != nil {
		return err
	}
	cmd, ok := m[oldName]
	if !ok {
		return notFound(oldName)
	}
	if _, taken := m[newName]; taken {
		return apperr.New(apperr.DuplicateName, "The name '%s' already exists.", newName)
	}

	m[newName] = cmd
	delete(m, oldName)
	if err := s.Save(m); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Failed to save commands")
	}
	return nil
}

// List returns all names in locale order.
func (s *Store) List() ([]string, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, apperr.New(apperr.EmptyStore, "No commands saved!")
	}
	names := lo.Keys(m)
	s.sort(names)
	return names, nil
}

// Get returns the command line saved under name.
func (s *Store) Get(name string) (string, error) {
	m, err := s.Load()
	if err != nil {
		return "", err
	}
	cmd, ok := m[name]
	if !ok {
		return "", notFound(name)
	}
	return cmd, nil
}

// Has reports whether name is saved. Load errors count as absent.
func (s *Store) Has(name string) bool {
	m, err := s.Load()
	if err != nil {
		return false
	}
	_, ok := m[name]
	return ok
}

func notFound(name string) error {
	return apperr.New(apperr.NotFound, "No command found with the name '%s'", name)
}
