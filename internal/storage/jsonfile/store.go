package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

const (
	TasksFileName      = "tareas.json"
	UniversityFileName = "universidad.json"
)

// Store keeps tasks and university reference data in two JSON files under one directory.
type Store struct {
	dir        string
	tasks      *document[tasksFile]
	university *document[universityFile]
	now        func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation stamps tasks in loc instead of the process zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		now := s.now
		s.now = func() time.Time { return now().In(loc) }
	}
}

// Open prepares dir and seeds missing files.
func Open(ctx context.Context, dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		dir:        dir,
		tasks:      newDocument[tasksFile](filepath.Join(dir, TasksFileName)),
		university: newDocument[universityFile](filepath.Join(dir, UniversityFileName)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.tasks.ensure(seedTasks); err != nil {
		return nil, err
	}
	if err := s.university.ensure(seedUniversity); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Str("dir", dir).Msg("record store ready")
	return s, nil
}

func (s *Store) Dir() string {
	return s.dir
}
