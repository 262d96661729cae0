package jsonfile

import "github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"

type universityFile struct {
	Schedules   []core.Schedule   `json:"horarios"`
	Instructors []core.Instructor `json:"profesores"`
	Rooms       []core.Room       `json:"aulas"`
}

type tasksFile struct {
	Tasks  []core.Task `json:"tareas"`
	NextID int         `json:"next_id"`
}

func seedTasks() tasksFile {
	return tasksFile{Tasks: []core.Task{}, NextID: 1}
}

func seedUniversity() universityFile {
	return universityFile{
		Schedules: []core.Schedule{
			{Subject: "Inteligencia Artificial", Day: "Lunes", StartTime: "10:00", EndTime: "12:00", Room: "A-201", Instructor: "Dr. García Martínez"},
			{Subject: "Bases de Datos", Day: "Martes", StartTime: "16:00", EndTime: "18:00", Room: "B-105", Instructor: "Dra. López Fernández"},
			{Subject: "Desarrollo Web", Day: "Miércoles", StartTime: "09:00", EndTime: "11:00", Room: "C-302", Instructor: "Prof. Rodríguez Pérez"},
			{Subject: "Inteligencia Artificial", Day: "Jueves", StartTime: "12:00", EndTime: "14:00", Room: "A-201", Instructor: "Dr. García Martínez"},
		},
		Instructors: []core.Instructor{
			{
				Name:        "Dr. García Martínez",
				Department:  "Informática",
				Email:       "garcia@universidad.es",
				Office:      "Edificio A, 3ª planta",
				OfficeHours: "Martes y Jueves 15:00-17:00",
			},
			{
				Name:        "Dra. López Fernández",
				Department:  "Sistemas de Información",
				Email:       "lopez@universidad.es",
				Office:      "Edificio B, 2ª planta",
				OfficeHours: "Lunes y Miércoles 11:00-13:00",
			},
			{
				Name:        "Prof. Rodríguez Pérez",
				Department:  "Ingeniería del Software",
				Email:       "rodriguez@universidad.es",
				Office:      "Edificio C, 1ª planta",
				OfficeHours: "Viernes 10:00-14:00",
			},
		},
		Rooms: []core.Room{
			{Code: "A-201", Building: "A", Capacity: 60, Equipment: []string{"Proyector", "Pizarra digital", "Ordenadores"}},
			{Code: "B-105", Building: "B", Capacity: 30, Equipment: []string{"Proyector", "Laboratorio informático"}},
			{Code: "C-302", Building: "C", Capacity: 40, Equipment: []string{"Proyector", "Sistema de audio"}},
		},
	}
}
