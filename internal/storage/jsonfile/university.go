package jsonfile

import (
	"context"
	"strings"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

// FindSchedule returns entries whose subject contains the text, case-insensitively.
func (s *Store) FindSchedule(ctx context.Context, subject string) ([]core.Schedule, error) {
	needle := strings.ToLower(subject)
	out := []core.Schedule{}

	err := s.university.view(func(u *universityFile) error {
		for _, h := range u.Schedules {
			if strings.Contains(strings.ToLower(h.Subject), needle) {
				out = append(out, h)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) AllSchedules(ctx context.Context) ([]core.Schedule, error) {
	out := []core.Schedule{}
	err := s.university.view(func(u *universityFile) error {
		out = append(out, u.Schedules...)
		return nil
	})
	return out, err
}

// FindInstructor returns the first instructor whose name contains the text.
func (s *Store) FindInstructor(ctx context.Context, name string) (*core.Instructor, error) {
	needle := strings.ToLower(name)
	var found *core.Instructor

	err := s.university.view(func(u *universityFile) error {
		for i := range u.Instructors {
			if strings.Contains(strings.ToLower(u.Instructors[i].Name), needle) {
				p := u.Instructors[i]
				found = &p
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (s *Store) AllInstructors(ctx context.Context) ([]core.Instructor, error) {
	out := []core.Instructor{}
	err := s.university.view(func(u *universityFile) error {
		out = append(out, u.Instructors...)
		return nil
	})
	return out, err
}

// FindRoom matches the room code exactly, ignoring case.
func (s *Store) FindRoom(ctx context.Context, code string) (*core.Room, error) {
	var found *core.Room

	err := s.university.view(func(u *universityFile) error {
		for i := range u.Rooms {
			if strings.EqualFold(u.Rooms[i].Code, code) {
				r := u.Rooms[i]
				found = &r
				return nil
			}
		}
		return nil
	})
	return found, err
}
