package jsonfile

import (
	"context"
	"fmt"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/datetime"
)

// CreateTask stores a pending task. The due date is moved forward when it
// lies in the past; ids come from a persisted counter and are never reused.
func (s *Store) CreateTask(ctx context.Context, in core.NewTask) (core.Task, error) {
	now := s.now()

	due, err := datetime.NormalizeFutureDate(in.DueDate, now)
	if err != nil {
		return core.Task{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = core.PriorityMedium
	}

	var task core.Task
	err = s.tasks.update(func(f *tasksFile) error {
		if f.NextID < 1 {
			f.NextID = nextFreeID(f.Tasks)
		}
		task = core.Task{
			ID:          f.NextID,
			Title:       in.Title,
			Description: in.Description,
			DueDate:     due,
			CreatedAt:   datetime.Stamp(now),
			Priority:    priority,
		}
		f.Tasks = append(f.Tasks, task)
		f.NextID++
		return nil
	})
	if err != nil {
		return core.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks filters by "pendientes", "completadas" or "todas". An empty filter
// means pending; any other value returns every task.
func (s *Store) ListTasks(ctx context.Context, filter string) ([]core.Task, error) {
	if filter == "" {
		filter = core.FilterPending
	}

	out := []core.Task{}
	err := s.tasks.view(func(f *tasksFile) error {
		for _, t := range f.Tasks {
			switch filter {
			case core.FilterPending:
				if t.Completed {
					continue
				}
			case core.FilterCompleted:
				if !t.Completed {
					continue
				}
			}
			out = append(out, t)
		}
		return nil
	})
	return out, err
}

func (s *Store) CompleteTask(ctx context.Context, id int) (core.Task, error) {
	stamp := datetime.Stamp(s.now())

	var task core.Task
	err := s.tasks.update(func(f *tasksFile) error {
		for i := range f.Tasks {
			if f.Tasks[i].ID == id {
				f.Tasks[i].Completed = true
				f.Tasks[i].CompletedAt = stamp
				task = f.Tasks[i]
				return nil
			}
		}
		return core.ErrTaskNotFound
	})
	if err != nil {
		return core.Task{}, err
	}
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int) error {
	return s.tasks.update(func(f *tasksFile) error {
		for i := range f.Tasks {
			if f.Tasks[i].ID == id {
				f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
				return nil
			}
		}
		return core.ErrTaskNotFound
	})
}

func nextFreeID(tasks []core.Task) int {
	next := 1
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
