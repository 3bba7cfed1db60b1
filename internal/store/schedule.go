package store

import (
	"database/sql"
	"fmt"
	"time"

	"casalimpia/internal/model"
)

// ScheduleStore persists week schedules and their embedded tasks.
type ScheduleStore struct {
	db *sql.DB
}

func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

const scheduleCols = `id, week_start, week_end, week_number, year, joan_area, mery_area, paco_area, belen_area, joan_bano, mery_bano, paco_bano, belen_bano`

const taskCols = `id, week_start, person, area, task_type, completed, completed_at`

func scanSchedule(scanner interface{ Scan(...any) error }) (*model.WeekSchedule, error) {
	var s model.WeekSchedule
	err := scanner.Scan(
		&s.ID, &s.WeekStart, &s.WeekEnd, &s.WeekNumber, &s.Year,
		&s.JoanArea, &s.MeryArea, &s.PacoArea, &s.BelenArea,
		&s.JoanBano, &s.MeryBano, &s.PacoBano, &s.BelenBano,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var completedAt sql.NullTime

	err := scanner.Scan(&t.ID, &t.WeekStart, &t.Person, &t.Area, &t.TaskType, &t.Completed, &completedAt)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		at := completedAt.Time.UTC()
		t.CompletedAt = &at
	}
	return &t, nil
}

// ReplaceAll deletes every stored schedule and inserts the given set in one
// transaction. Readers never observe a partially regenerated collection.
func (s *ScheduleStore) ReplaceAll(schedules []model.WeekSchedule) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM week_schedules`); err != nil {
		return 0, fmt.Errorf("delete schedules: %w", err)
	}

	for _, ws := range schedules {
		_, err := tx.Exec(
			`INSERT INTO week_schedules (`+scheduleCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ws.ID, ws.WeekStart, ws.WeekEnd, ws.WeekNumber, ws.Year,
			ws.JoanArea, ws.MeryArea, ws.PacoArea, ws.BelenArea,
			ws.JoanBano, ws.MeryBano, ws.PacoBano, ws.BelenBano,
		)
		if err != nil {
			return 0, fmt.Errorf("insert schedule %s: %w", ws.WeekStart, err)
		}
		for _, task := range ws.Tasks {
			var completedAt any
			if task.CompletedAt != nil {
				completedAt = task.CompletedAt.UTC()
			}
			_, err := tx.Exec(
				`INSERT INTO tasks (schedule_id, `+taskCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				ws.ID, task.ID, task.WeekStart, task.Person, task.Area, task.TaskType, task.Completed, completedAt,
			)
			if err != nil {
				return 0, fmt.Errorf("insert task %s/%s: %w", task.Person, task.TaskType, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return len(schedules), nil
}

// GetByWeekStart returns the schedule whose week starts on the given date,
// with its tasks embedded, or nil if none exists.
func (s *ScheduleStore) GetByWeekStart(weekStart string) (*model.WeekSchedule, error) {
	row := s.db.QueryRow(`SELECT `+scheduleCols+` FROM week_schedules WHERE week_start = ?`, weekStart)
	return s.loadOne(row, "get schedule")
}

// First returns the earliest schedule by week_start, or nil if the store is
// empty.
func (s *ScheduleStore) First() (*model.WeekSchedule, error) {
	row := s.db.QueryRow(`SELECT ` + scheduleCols + ` FROM week_schedules ORDER BY week_start ASC LIMIT 1`)
	return s.loadOne(row, "first schedule")
}

func (s *ScheduleStore) loadOne(row *sql.Row, op string) (*model.WeekSchedule, error) {
	ws, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tasks, err := s.tasksFor(ws.ID)
	if err != nil {
		return nil, err
	}
	ws.Tasks = tasks
	return ws, nil
}

// List returns all schedules ordered by week_start ascending, each with its
// tasks embedded. The result is empty, not an error, when nothing is stored.
func (s *ScheduleStore) List() ([]model.WeekSchedule, error) {
	rows, err := s.db.Query(`SELECT ` + scheduleCols + ` FROM week_schedules ORDER BY week_start ASC`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.WeekSchedule
	index := make(map[string]int)
	for rows.Next() {
		ws, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		index[ws.ID] = len(schedules)
		schedules = append(schedules, *ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := s.db.Query(`SELECT schedule_id, ` + taskCols + ` FROM tasks ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var scheduleID string
		var t model.Task
		var completedAt sql.NullTime
		err := taskRows.Scan(&scheduleID, &t.ID, &t.WeekStart, &t.Person, &t.Area, &t.TaskType, &t.Completed, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if completedAt.Valid {
			at := completedAt.Time.UTC()
			t.CompletedAt = &at
		}
		if i, ok := index[scheduleID]; ok {
			schedules[i].Tasks = append(schedules[i].Tasks, t)
		}
	}
	return schedules, taskRows.Err()
}

func (s *ScheduleStore) tasksFor(scheduleID string) ([]model.Task, error) {
	rows, err := s.db.Query(`SELECT `+taskCols+` FROM tasks WHERE schedule_id = ? ORDER BY rowid ASC`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// CompleteTask sets the completion flag of the task identified by its
// natural key. The timestamp is set when completing and cleared when
// un-completing. Returns false when no task matches.
func (s *ScheduleStore) CompleteTask(weekStart string, person model.Person, area model.Area, taskType model.TaskType, completed bool, now time.Time) (bool, error) {
	var completedAt any
	if completed {
		completedAt = now.UTC()
	}

	result, err := s.db.Exec(
		`UPDATE tasks SET completed = ?, completed_at = ? WHERE week_start = ? AND person = ? AND area = ? AND task_type = ?`,
		completed, completedAt, weekStart, person, area, taskType,
	)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteAll removes every schedule and its tasks, returning how many
// schedules were deleted. Tasks are deleted explicitly rather than left to
// the cascade so the collection empties even on a handle without foreign
// keys enforced.
func (s *ScheduleStore) DeleteAll() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM week_schedules`)
	if err != nil {
		return 0, fmt.Errorf("delete schedules: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return n, nil
}
