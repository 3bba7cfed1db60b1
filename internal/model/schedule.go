package model

import "time"

// DateLayout is the wire and storage format for calendar dates (no time
// component): week starts and week ends.
const DateLayout = "2006-01-02"

// Task is one person's cleaning duty within a week. Tasks are created only
// by schedule generation and mutated only by the completion update; the
// (week_start, person, area, task_type) tuple is unique within a schedule.
type Task struct {
	ID          string     `json:"id"`
	WeekStart   string     `json:"week_start"`
	Person      Person     `json:"person"`
	Area        Area       `json:"area"`
	TaskType    TaskType   `json:"task_type"`
	Completed   bool       `json:"limpieza_completada"`
	CompletedAt *time.Time `json:"completed_at"`
}

// WeekSchedule is one Monday-to-Sunday week of assignments, keyed by its
// week_start date.
type WeekSchedule struct {
	ID         string `json:"id"`
	WeekStart  string `json:"week_start"`
	WeekEnd    string `json:"week_end"`
	WeekNumber int    `json:"week_number"`
	Year       int    `json:"year"`
	JoanArea   Area   `json:"joan_area"`
	MeryArea   Area   `json:"mery_area"`
	PacoArea   Area   `json:"paco_area"`
	BelenArea  Area   `json:"belen_area"`
	JoanBano   bool   `json:"joan_bano"`
	MeryBano   bool   `json:"mery_bano"`
	PacoBano   bool   `json:"paco_bano"`
	BelenBano  bool   `json:"belen_bano"`
	Tasks      []Task `json:"tasks"`
}
