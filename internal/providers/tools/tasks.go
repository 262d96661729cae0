package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const createTaskSchema = `
{
  "type": "object",
  "properties": {
    "titulo": { "type": "string", "description": "Título de la tarea" },
    "fecha_vencimiento": { "type": "string", "description": "Fecha de vencimiento (YYYY-MM-DD)" },
    "descripcion": { "type": "string", "description": "Descripción de la tarea (opcional)" },
    "prioridad": { "type": "string", "enum": ["baja", "media", "alta"], "description": "Prioridad de la tarea" }
  },
  "required": ["titulo", "fecha_vencimiento"]
}
`

const listTasksSchema = `
{
  "type": "object",
  "properties": {
    "filtro": { "type": "string", "enum": ["todas", "pendientes", "completadas"], "description": "Filtro para las tareas" }
  }
}
`

const completeTaskSchema = `
{
  "type": "object",
  "properties": {
    "id_tarea": { "type": "integer", "description": "ID de la tarea a completar" }
  },
  "required": ["id_tarea"]
}
`

const deleteTaskSchema = `
{
  "type": "object",
  "properties": {
    "id_tarea": { "type": "integer", "description": "ID de la tarea a eliminar" }
  },
  "required": ["id_tarea"]
}
`

const taskNotFoundMessage = "Tarea no encontrada"

type TaskOutcome struct {
	Success bool       `json:"success"`
	Task    *core.Task `json:"tarea,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Tasks manages the personal task list.
type Tasks struct {
	repo core.TaskRepository
}

func NewTasks(repo core.TaskRepository) *Tasks {
	return &Tasks{repo: repo}
}

func (t *Tasks) Definitions() []Definition {
	return []Definition{
		{
			Name:        "crear_tarea",
			Description: "Crea una nueva tarea o recordatorio",
			Schema:      json.RawMessage(createTaskSchema),
			Handler:     t.Create,
		},
		{
			Name:        "listar_tareas",
			Description: "Lista las tareas según un filtro",
			Schema:      json.RawMessage(listTasksSchema),
			Handler:     t.List,
		},
		{
			Name:        "completar_tarea",
			Description: "Marca una tarea como completada",
			Schema:      json.RawMessage(completeTaskSchema),
			Handler:     t.Complete,
		},
		{
			Name:        "eliminar_tarea",
			Description: "Elimina una tarea",
			Schema:      json.RawMessage(deleteTaskSchema),
			Handler:     t.Delete,
		},
	}
}

func (t *Tasks) Create(ctx context.Context, args map[string]any) (any, error) {
	title, err := requiredString(args, "titulo")
	if err != nil {
		return nil, err
	}
	due, err := requiredString(args, "fecha_vencimiento")
	if err != nil {
		return nil, err
	}
	description, err := optionalString(args, "descripcion", "")
	if err != nil {
		return nil, err
	}
	priority, err := optionalString(args, "prioridad", core.PriorityMedium)
	if err != nil {
		return nil, err
	}

	return t.repo.CreateTask(ctx, core.NewTask{
		Title:       title,
		DueDate:     due,
		Description: description,
		Priority:    priority,
	})
}

func (t *Tasks) List(ctx context.Context, args map[string]any) (any, error) {
	filter, err := optionalString(args, "filtro", core.FilterPending)
	if err != nil {
		return nil, err
	}
	return t.repo.ListTasks(ctx, filter)
}

func (t *Tasks) Complete(ctx context.Context, args map[string]any) (any, error) {
	id, err := requiredInt(args, "id_tarea")
	if err != nil {
		return nil, err
	}

	task, err := t.repo.CompleteTask(ctx, id)
	if errors.Is(err, core.ErrTaskNotFound) {
		return TaskOutcome{Success: false, Error: taskNotFoundMessage}, nil
	}
	if err != nil {
		return nil, err
	}
	return TaskOutcome{Success: true, Task: &task}, nil
}

func (t *Tasks) Delete(ctx context.Context, args map[string]any) (any, error) {
	id, err := requiredInt(args, "id_tarea")
	if err != nil {
		return nil, err
	}

	err = t.repo.DeleteTask(ctx, id)
	if errors.Is(err, core.ErrTaskNotFound) {
		return TaskOutcome{Success: false, Error: taskNotFoundMessage}, nil
	}
	if err != nil {
		return nil, err
	}
	return TaskOutcome{Success: true, Message: fmt.Sprintf("Tarea %d eliminada", id)}, nil
}
