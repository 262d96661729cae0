package agent

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/datetime"
)

const DefaultSystemPrompt = `
Eres un asistente universitario conectado a un conjunto de herramientas
que contienen los datos reales del usuario (horarios, asignaturas,
profesores, aulas y tareas), asi como acceso a su Google Calendar.

REGLAS IMPORTANTES:
1. Si el usuario pregunta por su horario, asignaturas, profesores, aulas
   o tareas, DEBES usar siempre la herramienta correspondiente
   (consultar_horario, consultar_todos_horarios, buscar_profesor,
   consultar_aula, listar_tareas, etc.).
2. No inventes informacion. Si no existe una herramienta adecuada o los
   datos fallan, explica el error de forma clara.
3. Nunca respondas directamente sobre horarios, asignaturas, profesores
   o aulas sin consultar las herramientas.
4. Mantén respuestas breves y centradas en la informacion que devuelvan
   las herramientas.
5. Cuando el usuario mencione fechas relativas (como "mañana",
   "el viernes", "el 15 de diciembre"), elige SIEMPRE un año que sea
   igual o posterior al año actual del sistema. Nunca uses años
   anteriores (como 2023) al generar argumentos para las herramientas
   de tareas o calendario. Si dudas, pregunta qué año quiere el usuario.
`

const dateGuidance = "\n\nFecha actual: %s. " +
	"Cuando el usuario use palabras como 'hoy', 'mañana' o " +
	"'pasado mañana', debes convertirlas SIEMPRE a fechas " +
	"completas en formato 'YYYY-MM-DD HH:MM' usando esta " +
	"fecha como referencia. " +
	"Nunca pongas años anteriores al año actual salvo que " +
	"el usuario lo pida explícitamente."

// SysPrompt builds the system message sent ahead of every model call.
type SysPrompt struct {
	cfg core.PromptConfig
	now func() time.Time
}

func NewSysPrompt(cfg core.PromptConfig) *SysPrompt {
	return &SysPrompt{cfg: cfg, now: time.Now}
}

// Build stamps the current date in the configured zone, or in local time
// when that zone is unknown. SYSTEM.md replaces the built-in instructions.
func (p *SysPrompt) Build() core.Message {
	base := DefaultSystemPrompt
	if path := p.cfg.GetSystemPath(); path != "" {
		if content, err := os.ReadFile(path); err == nil && strings.TrimSpace(string(content)) != "" {
			base = string(content)
		}
	}

	now := p.now().In(datetime.LoadLocation(p.cfg.GetTimeZone()))
	return core.Message{
		Role:    core.RoleSystem,
		Content: base + fmt.Sprintf(dateGuidance, datetime.Stamp(now)),
	}
}
