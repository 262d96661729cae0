package core

import (
	"context"
	"errors"
)

var ErrTaskNotFound = errors.New("task not found")

const (
	PriorityLow    = "baja"
	PriorityMedium = "media"
	PriorityHigh   = "alta"

	FilterPending   = "pendientes"
	FilterCompleted = "completadas"
	FilterAll       = "todas"
)

type Schedule struct {
	Subject    string `json:"asignatura"`
	Day        string `json:"dia"`
	StartTime  string `json:"hora_inicio"`
	EndTime    string `json:"hora_fin"`
	Room       string `json:"aula"`
	Instructor string `json:"profesor"`
}

type Instructor struct {
	Name        string `json:"nombre"`
	Department  string `json:"departamento"`
	Email       string `json:"email"`
	Office      string `json:"despacho"`
	OfficeHours string `json:"tutorias"`
}

type Room struct {
	Code      string   `json:"codigo"`
	Building  string   `json:"edificio"`
	Capacity  int      `json:"capacidad"`
	Equipment []string `json:"equipamiento"`
}

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	DueDate     string `json:"fecha_vencimiento"`
	CreatedAt   string `json:"fecha_creacion"`
	Completed   bool   `json:"completada"`
	Priority    string `json:"prioridad"`
	CompletedAt string `json:"fecha_completada,omitempty"`
}

type NewTask struct {
	Title       string
	DueDate     string
	Description string
	Priority    string
}

type UniversityRepository interface {
	FindSchedule(ctx context.Context, subject string) ([]Schedule, error)
	AllSchedules(ctx context.Context) ([]Schedule, error)
	// FindInstructor returns nil when no instructor matches.
	FindInstructor(ctx context.Context, name string) (*Instructor, error)
	AllInstructors(ctx context.Context) ([]Instructor, error)
	// FindRoom returns nil when no room has the code.
	FindRoom(ctx context.Context, code string) (*Room, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, in NewTask) (Task, error)
	ListTasks(ctx context.Context, filter string) ([]Task, error)
	CompleteTask(ctx context.Context, id int) (Task, error)
	DeleteTask(ctx context.Context, id int) error
}
