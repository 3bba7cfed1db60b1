// Package rotation computes the weekly cleaning assignments for the flat.
// The rules are fixed: Joan+Mery and Paco+Belén each form a pair, the pairs
// swap the two main areas every week, and within each pair bathroom duty
// alternates weekly between the two people.
package rotation

import (
	"time"

	"github.com/google/uuid"

	"casalimpia/internal/model"
)

// Horizon is the fixed cutoff: no week is generated whose Monday falls
// after this date.
var Horizon = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

// MondayOf returns the Monday of the week containing t, at midnight UTC.
func MondayOf(t time.Time) time.Time {
	t = dateOnly(t)
	return t.AddDate(0, 0, -weekday(t))
}

// NextMonday returns the first Monday strictly after the week containing t.
// When t itself is a Monday the result is seven days out: the current week
// is never included in a generated rotation.
func NextMonday(t time.Time) time.Time {
	t = dateOnly(t)
	days := (7 - weekday(t)) % 7
	if days == 0 {
		days = 7
	}
	return t.AddDate(0, 0, days)
}

// Generate produces one WeekSchedule per week from the Monday after now
// through Horizon inclusive. All tasks start incomplete. The result is
// empty (not an error) when the first Monday already lies past Horizon.
func Generate(now time.Time) []model.WeekSchedule {
	var schedules []model.WeekSchedule
	monday := NextMonday(now)
	for week := 0; !monday.After(Horizon); week++ {
		schedules = append(schedules, buildWeek(monday, week))
		monday = monday.AddDate(0, 0, 7)
	}
	return schedules
}

func buildWeek(monday time.Time, week int) model.WeekSchedule {
	even := week%2 == 0

	pairOneArea := model.AreaCocina
	pairTwoArea := model.AreaSalonPasillo
	if !even {
		pairOneArea, pairTwoArea = pairTwoArea, pairOneArea
	}

	mainAreas := map[model.Person]model.Area{
		model.PersonJoan:  pairOneArea,
		model.PersonMery:  pairOneArea,
		model.PersonPaco:  pairTwoArea,
		model.PersonBelen: pairTwoArea,
	}
	// Joan and Paco take their pair's bathroom on even weeks, Mery and
	// Belén on odd weeks. Independent of the main-area parity.
	bathroomDuty := map[model.Person]bool{
		model.PersonJoan:  even,
		model.PersonMery:  !even,
		model.PersonPaco:  even,
		model.PersonBelen: !even,
	}

	sunday := monday.AddDate(0, 0, 6)
	_, weekNumber := monday.ISOWeek()

	ws := model.WeekSchedule{
		ID:         uuid.NewString(),
		WeekStart:  monday.Format(model.DateLayout),
		WeekEnd:    sunday.Format(model.DateLayout),
		WeekNumber: weekNumber,
		Year:       monday.Year(),
		JoanArea:   mainAreas[model.PersonJoan],
		MeryArea:   mainAreas[model.PersonMery],
		PacoArea:   mainAreas[model.PersonPaco],
		BelenArea:  mainAreas[model.PersonBelen],
		JoanBano:   bathroomDuty[model.PersonJoan],
		MeryBano:   bathroomDuty[model.PersonMery],
		PacoBano:   bathroomDuty[model.PersonPaco],
		BelenBano:  bathroomDuty[model.PersonBelen],
	}

	for _, p := range model.People {
		ws.Tasks = append(ws.Tasks, newTask(ws.WeekStart, p, mainAreas[p], model.TaskLimpiezaPrincipal))
	}
	for _, p := range model.People {
		if bathroomDuty[p] {
			ws.Tasks = append(ws.Tasks, newTask(ws.WeekStart, p, p.Bathroom(), model.TaskLimpiezaBano))
		}
	}
	return ws
}

func newTask(weekStart string, person model.Person, area model.Area, taskType model.TaskType) model.Task {
	return model.Task{
		ID:        uuid.NewString(),
		WeekStart: weekStart,
		Person:    person,
		Area:      area,
		TaskType:  taskType,
	}
}

// weekday maps Go's Sunday-based weekday to a Monday-based index (Monday=0).
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
