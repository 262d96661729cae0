package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

var fixedNow = time.Date(2025, time.November, 28, 9, 45, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(context.Background(), dir, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s, dir
}

func TestOpen_SeedsFiles(t *testing.T) {
	_, dir := newTestStore(t)

	raw, err := os.ReadFile(filepath.Join(dir, TasksFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tareas":[],"next_id":1}`, string(raw))

	raw, err = os.ReadFile(filepath.Join(dir, UniversityFileName))
	require.NoError(t, err)

	var u universityFile
	require.NoError(t, json.Unmarshal(raw, &u))
	assert.Len(t, u.Schedules, 4)
	assert.Len(t, u.Instructors, 3)
	assert.Len(t, u.Rooms, 3)
	assert.Contains(t, string(raw), "Dr. García Martínez")
}

func TestOpen_KeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := `{"horarios":[],"profesores":[],"aulas":[{"codigo":"Z-1","edificio":"Z","capacidad":5,"equipamiento":[]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, UniversityFileName), []byte(custom), 0o644))

	s, err := Open(context.Background(), dir)
	require.NoError(t, err)

	room, err := s.FindRoom(context.Background(), "z-1")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, 5, room.Capacity)
}

func TestFindSchedule(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		subject string
		want    int
	}{
		{subject: "Inteligencia Artificial", want: 2},
		{subject: "inteligencia", want: 2},
		{subject: "DATOS", want: 1},
		{subject: "Química", want: 0},
		{subject: "", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			got, err := s.FindSchedule(ctx, tt.subject)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}

	all, err := s.AllSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Lunes", all[0].Day)
}

func TestFindInstructorAndRoom(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.FindInstructor(ctx, "garcía")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "garcia@universidad.es", p.Email)

	p, err = s.FindInstructor(ctx, "Pérez")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ingeniería del Software", p.Department)

	p, err = s.FindInstructor(ctx, "Newton")
	require.NoError(t, err)
	assert.Nil(t, p)

	all, err := s.AllInstructors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	room, err := s.FindRoom(ctx, "a-201")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, 60, room.Capacity)
	assert.Equal(t, []string{"Proyector", "Pizarra digital", "Ordenadores"}, room.Equipment)

	room, err = s.FindRoom(ctx, "A-20")
	require.NoError(t, err)
	assert.Nil(t, room)
}

func TestTaskLifecycle(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateTask(ctx, core.NewTask{Title: "Práctica 1", Description: "Bases de Datos", DueDate: "2023-12-20", Priority: core.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, core.Task{
		ID:          1,
		Title:       "Práctica 1",
		Description: "Bases de Datos",
		DueDate:     "2025-12-20",
		CreatedAt:   "2025-11-28 09:45",
		Priority:    core.PriorityHigh,
	}, first)

	second, err := s.CreateTask(ctx, core.NewTask{Title: "Memoria", DueDate: "2026-01-15"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, core.PriorityMedium, second.Priority)

	require.NoError(t, s.DeleteTask(ctx, 2))

	third, err := s.CreateTask(ctx, core.NewTask{Title: "Examen", DueDate: "2026-02-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID, "ids must not be reused after a delete")

	done, err := s.CompleteTask(ctx, 1)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "2025-11-28 09:45", done.CompletedAt)

	pending, err := s.ListTasks(ctx, core.FilterPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 3, pending[0].ID)

	completed, err := s.ListTasks(ctx, core.FilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 1, completed[0].ID)

	all, err := s.ListTasks(ctx, core.FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unknown, err := s.ListTasks(ctx, "urgentes")
	require.NoError(t, err)
	assert.Len(t, unknown, 2)

	byDefault, err := s.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, byDefault, 1)

	// Counter and tasks survive a reopen.
	reopened, err := Open(ctx, dir, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	fourth, err := reopened.CreateTask(ctx, core.NewTask{Title: "Extra", DueDate: "2026-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 4, fourth.ID)
}

func TestTaskErrors(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	_, err := s.CompleteTask(ctx, 99)
	assert.ErrorIs(t, err, core.ErrTaskNotFound)

	assert.ErrorIs(t, s.DeleteTask(ctx, 99), core.ErrTaskNotFound)

	_, err = s.CreateTask(ctx, core.NewTask{Title: "Mala fecha", DueDate: "20/12/2025"})
	assert.Error(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, TasksFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tareas":[],"next_id":1}`, string(raw), "failed operations must not touch the file")

	empty, err := s.ListTasks(ctx, core.FilterAll)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateTask_Concurrent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 20
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := s.CreateTask(ctx, core.NewTask{Title: "t", DueDate: "2026-01-01"})
			assert.NoError(t, err)
			ids <- task.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	all, err := s.ListTasks(ctx, core.FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestWithLocation(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	s, err := Open(context.Background(), t.TempDir(),
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(madrid),
	)
	require.NoError(t, err)

	task, err := s.CreateTask(context.Background(), core.NewTask{Title: "x", DueDate: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-28 10:45", task.CreatedAt)
}
