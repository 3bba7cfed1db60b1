package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"casalimpia/internal/model"
	"casalimpia/internal/rotation"
	"casalimpia/internal/store"
	"casalimpia/internal/websocket"
)

const welcomeMessage = "Casa Limpia API - ¡Tu planificador de limpieza doméstica con baños incluidos!"

// ScheduleHandler serves the schedule API: regenerate, query, and task
// completion updates.
type ScheduleHandler struct {
	store  *store.ScheduleStore
	hub    *websocket.Hub
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduleHandler(s *store.ScheduleStore, hub *websocket.Hub, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{store: s, hub: hub, logger: logger, now: time.Now}
}

func (h *ScheduleHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *ScheduleHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// Generate replaces the whole collection with a freshly computed rotation
// starting the Monday after the current week.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	schedules := rotation.Generate(h.now())

	n, err := h.store.ReplaceAll(schedules)
	if err != nil {
		h.logger.Error("replace schedules", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store schedules"})
		return
	}

	resp := map[string]any{
		"message": fmt.Sprintf("Se crearon %d planificaciones semanales con baños incluidos", n),
		"created": n,
		"from":    nil,
		"to":      nil,
	}
	if n > 0 {
		resp["from"] = schedules[0].WeekStart
		resp["to"] = schedules[n-1].WeekStart
	}

	h.logger.Info("schedules generated", "created", n)
	h.broadcast(websocket.NewMessage("schedules", "generated", "", map[string]any{"created": n}))

	writeJSON(w, http.StatusOK, resp)
}

// CurrentWeek returns this week's schedule, or the earliest stored one when
// this week was never generated (the rotation always starts next week).
func (h *ScheduleHandler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	monday := rotation.MondayOf(h.now()).Format(model.DateLayout)

	ws, err := h.store.GetByWeekStart(monday)
	if err != nil {
		h.logger.Error("get current week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load current week"})
		return
	}
	if ws == nil {
		ws, err = h.store.First()
		if err != nil {
			h.logger.Error("get first schedule", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load current week"})
			return
		}
	}
	if ws == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No hay planificaciones disponibles"})
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

type completeTaskRequest struct {
	WeekStart string `json:"week_start"`
	Person    string `json:"person"`
	Area      string `json:"area"`
	TaskType  string `json:"task_type"`
	Completed bool   `json:"completed"`
}

// CompleteTask flips the completion flag of one task, identified by its
// (week_start, person, area, task_type) tuple.
func (h *ScheduleHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid JSON body"})
		return
	}

	person, err := model.ParsePerson(req.Person)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	area, err := model.ParseArea(req.Area)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	taskType, err := model.ParseTaskType(req.TaskType)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	if _, err := time.Parse(model.DateLayout, req.WeekStart); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "week_start must be a YYYY-MM-DD date"})
		return
	}

	ok, err := h.store.CompleteTask(req.WeekStart, person, area, taskType, req.Completed, h.now())
	if err != nil {
		h.logger.Error("complete task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update task"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Tarea no encontrada"})
		return
	}

	action := "uncompleted"
	if req.Completed {
		action = "completed"
	}
	h.broadcast(websocket.NewMessage("task", action, req.WeekStart, map[string]any{
		"person": string(person),
		"area":   string(area),
	}))

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Tarea actualizada correctamente",
		"completed": req.Completed,
	})
}

// List returns every schedule ordered by week_start ascending.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.List()
	if err != nil {
		h.logger.Error("list schedules", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list schedules"})
		return
	}
	if schedules == nil {
		schedules = []model.WeekSchedule{}
	}
	writeJSON(w, http.StatusOK, schedules)
}

// DeleteAll empties the collection and reports how many schedules went.
func (h *ScheduleHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.DeleteAll()
	if err != nil {
		h.logger.Error("delete schedules", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete schedules"})
		return
	}

	h.logger.Info("schedules deleted", "count", n)
	h.broadcast(websocket.NewMessage("schedules", "deleted", "", map[string]any{"deleted": n}))

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Se eliminaron %d planificaciones", n),
		"deleted": n,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
