package tools

import (
	"context"
	"encoding/json"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const defaultMaxEvents = 10

const listEventsSchema = `
{
  "type": "object",
  "properties": {
    "fecha_inicio": { "type": "string", "description": "Fecha y hora de inicio en formato 'YYYY-MM-DD HH:MM'. Ejemplo: '2025-11-28 09:00'" },
    "fecha_fin": { "type": "string", "description": "Fecha y hora de fin en formato 'YYYY-MM-DD HH:MM'. Ejemplo: '2025-11-28 23:59'" },
    "max_resultados": { "type": "integer", "description": "Número máximo de eventos a devolver (por defecto 10)", "default": 10 }
  },
  "required": ["fecha_inicio", "fecha_fin"]
}
`

const createEventSchema = `
{
  "type": "object",
  "properties": {
    "titulo": { "type": "string", "description": "Título del evento (ej: 'Examen de IA')" },
    "fecha_inicio": { "type": "string", "description": "Fecha y hora de inicio en formato 'YYYY-MM-DD HH:MM'. Ejemplo: '2025-12-15 10:00'" },
    "fecha_fin": { "type": "string", "description": "Fecha y hora de fin en formato 'YYYY-MM-DD HH:MM'. Ejemplo: '2025-12-15 12:00'" },
    "descripcion": { "type": "string", "description": "Descripción del evento (opcional)" },
    "ubicacion": { "type": "string", "description": "Ubicación del evento (opcional, ej: 'Aula A-201')" }
  },
  "required": ["titulo", "fecha_inicio", "fecha_fin"]
}
`

const deleteEventSchema = `
{
  "type": "object",
  "properties": {
    "event_id": { "type": "string", "description": "ID del evento en Google Calendar. Normalmente lo obtienes previamente usando listar_eventos_calendario." }
  },
  "required": ["event_id"]
}
`

// Calendar exposes the user's Google Calendar.
type Calendar struct {
	cal core.Calendar
}

func NewCalendar(cal core.Calendar) *Calendar {
	return &Calendar{cal: cal}
}

func (c *Calendar) Definitions() []Definition {
	return []Definition{
		{
			Name: "listar_eventos_calendario",
			Description: "Lista eventos del Google Calendar del usuario entre dos fechas y horas. " +
				"Úsalo cuando el usuario quiera saber qué tiene en su calendario en un rango de tiempo concreto.",
			Schema:  json.RawMessage(listEventsSchema),
			Handler: c.ListEvents,
		},
		{
			Name: "crear_evento_calendario",
			Description: "Crea un nuevo evento en Google Calendar. " +
				"Úsalo cuando el usuario quiera guardar un recordatorio o reunión en una fecha y hora concretas.",
			Schema:  json.RawMessage(createEventSchema),
			Handler: c.CreateEvent,
		},
		{
			Name: "eliminar_evento_calendario",
			Description: "Elimina un evento del Google Calendar por su ID. " +
				"Úsalo cuando el usuario indique claramente qué evento quiere borrar.",
			Schema:  json.RawMessage(deleteEventSchema),
			Handler: c.DeleteEvent,
		},
	}
}

func (c *Calendar) ListEvents(ctx context.Context, args map[string]any) (any, error) {
	start, err := requiredString(args, "fecha_inicio")
	if err != nil {
		return nil, err
	}
	end, err := requiredString(args, "fecha_fin")
	if err != nil {
		return nil, err
	}
	maxResults, err := optionalInt(args, "max_resultados", defaultMaxEvents)
	if err != nil {
		return nil, err
	}
	return c.cal.ListEvents(ctx, start, end, maxResults)
}

func (c *Calendar) CreateEvent(ctx context.Context, args map[string]any) (any, error) {
	title, err := requiredString(args, "titulo")
	if err != nil {
		return nil, err
	}
	start, err := requiredString(args, "fecha_inicio")
	if err != nil {
		return nil, err
	}
	end, err := requiredString(args, "fecha_fin")
	if err != nil {
		return nil, err
	}
	description, err := optionalString(args, "descripcion", "")
	if err != nil {
		return nil, err
	}
	location, err := optionalString(args, "ubicacion", "")
	if err != nil {
		return nil, err
	}

	return c.cal.CreateEvent(ctx, core.NewCalendarEvent{
		Title:       title,
		Start:       start,
		End:         end,
		Description: description,
		Location:    location,
	})
}

func (c *Calendar) DeleteEvent(ctx context.Context, args map[string]any) (any, error) {
	id, err := requiredString(args, "event_id")
	if err != nil {
		return nil, err
	}
	return c.cal.DeleteEvent(ctx, id)
}
