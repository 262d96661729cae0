package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const subjectSchema = `
{
  "type": "object",
  "properties": {
    "asignatura": { "type": "string", "description": "Nombre de la asignatura" }
  },
  "required": ["asignatura"]
}
`

const instructorSchema = `
{
  "type": "object",
  "properties": {
    "nombre": { "type": "string", "description": "Nombre del profesor a buscar" }
  },
  "required": ["nombre"]
}
`

const roomSchema = `
{
  "type": "object",
  "properties": {
    "codigo_aula": { "type": "string", "description": "Código del aula (ej: A-201)" }
  },
  "required": ["codigo_aula"]
}
`

const noArgsSchema = `{"type": "object", "properties": {}}`

// University answers schedule, instructor and room questions.
type University struct {
	repo core.UniversityRepository
}

func NewUniversity(repo core.UniversityRepository) *University {
	return &University{repo: repo}
}

func (u *University) Definitions() []Definition {
	return []Definition{
		{
			Name:        "consultar_horario",
			Description: "Consulta el horario de una asignatura específica",
			Schema:      json.RawMessage(subjectSchema),
			Handler:     u.Schedule,
		},
		{
			Name:        "consultar_todos_horarios",
			Description: "Obtiene el horario completo de todas las asignaturas",
			Schema:      json.RawMessage(noArgsSchema),
			Handler:     u.AllSchedules,
		},
		{
			Name:        "buscar_profesor",
			Description: "Busca información sobre un profesor",
			Schema:      json.RawMessage(instructorSchema),
			Handler:     u.Instructor,
		},
		{
			Name:        "listar_profesores",
			Description: "Lista todos los profesores con su departamento, despacho y tutorías",
			Schema:      json.RawMessage(noArgsSchema),
			Handler:     u.AllInstructors,
		},
		{
			Name:        "consultar_aula",
			Description: "Obtiene información sobre un aula",
			Schema:      json.RawMessage(roomSchema),
			Handler:     u.Room,
		},
	}
}

func (u *University) Schedule(ctx context.Context, args map[string]any) (any, error) {
	subject, err := requiredString(args, "asignatura")
	if err != nil {
		return nil, err
	}
	return u.repo.FindSchedule(ctx, subject)
}

func (u *University) AllSchedules(ctx context.Context, _ map[string]any) (any, error) {
	return u.repo.AllSchedules(ctx)
}

func (u *University) Instructor(ctx context.Context, args map[string]any) (any, error) {
	name, err := requiredString(args, "nombre")
	if err != nil {
		return nil, err
	}
	p, err := u.repo.FindInstructor(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return errorResult(fmt.Sprintf("Profesor '%s' no encontrado", name)), nil
	}
	return p, nil
}

func (u *University) AllInstructors(ctx context.Context, _ map[string]any) (any, error) {
	return u.repo.AllInstructors(ctx)
}

func (u *University) Room(ctx context.Context, args map[string]any) (any, error) {
	code, err := requiredString(args, "codigo_aula")
	if err != nil {
		return nil, err
	}
	r, err := u.repo.FindRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return errorResult(fmt.Sprintf("Aula '%s' no encontrada", code)), nil
	}
	return r, nil
}

func errorResult(msg string) map[string]string {
	return map[string]string{"error": msg}
}
