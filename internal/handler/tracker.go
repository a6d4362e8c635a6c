package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/service"
)

// TrackerHandler serves the per-user record endpoints. Every record type
// follows the same pattern:
//
//	POST /api/<kind>            → validate + store, {"message": ...}
//	GET  /api/<kind>/{user_id}  → that user's records, [] when none
//
// The two generic helpers below carry that pattern so each endpoint only
// states its input type, service call and view.
type TrackerHandler struct {
	tracker *service.TrackerService
	loc     *time.Location
	logger  *slog.Logger
}

// NewTrackerHandler renders record dates in loc. Pass the same location as
// the stats service so a record's date and its week agree.
func NewTrackerHandler(tracker *service.TrackerService, loc *time.Location, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{tracker: tracker, loc: loc, logger: logger}
}

// create decodes an In, runs save, and writes the body built by respond.
func create[In, Out any](
	h *TrackerHandler,
	w http.ResponseWriter,
	r *http.Request,
	save func(context.Context, In) (Out, error),
	respond func(Out) any,
) {
	var in In
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	out, err := save(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, respond(out))
}

// list parses {user_id}, runs load and writes the records through view.
func list[T, V any](
	h *TrackerHandler,
	w http.ResponseWriter,
	r *http.Request,
	load func(context.Context, int64) ([]T, error),
	view func(T, *time.Location) V,
) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items, err := load(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, mapViews(items, h.loc, view))
}

// HTTP: POST /api/moods
// REQUEST BODY: {"user_id": 1, "mood": "calm", "note": "slept well"}
func (h *TrackerHandler) HandleAddMood(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddMood, func(*model.Mood) any {
		return MessageResponse{Message: "Mood saved"}
	})
}

// HTTP: GET /api/moods/{user_id}
func (h *TrackerHandler) HandleListMoods(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListMoods, moodView)
}

// HTTP: POST /api/activity
// REQUEST BODY: {"user_id": 1, "activity": "walk", "duration": 30}
func (h *TrackerHandler) HandleAddActivity(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddActivity, func(*model.Activity) any {
		return MessageResponse{Message: "Activity saved"}
	})
}

// HTTP: GET /api/activity/{user_id}
func (h *TrackerHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListActivities, activityView)
}

// HTTP: POST /api/exercises
func (h *TrackerHandler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddExercise, func(e *model.Exercise) any {
		return CreatedResponse{Message: "Exercise saved", ID: e.ID}
	})
}

// HTTP: GET /api/exercises/{user_id}
func (h *TrackerHandler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListExercises, exerciseView)
}

// HTTP: POST /api/sleep
func (h *TrackerHandler) HandleAddSleep(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddSleep, func(l *model.SleepLog) any {
		return CreatedResponse{Message: "Sleep logged", ID: l.ID}
	})
}

// HTTP: GET /api/sleep/{user_id}
func (h *TrackerHandler) HandleListSleep(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListSleepLogs, sleepView)
}

// HTTP: POST /api/meditations
func (h *TrackerHandler) HandleAddMeditation(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddMeditation, func(m *model.Meditation) any {
		return CreatedResponse{Message: "Meditation saved", ID: m.ID}
	})
}

// HTTP: GET /api/meditations/{user_id}
func (h *TrackerHandler) HandleListMeditations(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListMeditations, meditationView)
}

// HTTP: POST /api/journals
func (h *TrackerHandler) HandleAddJournal(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddJournal, func(j *model.Journal) any {
		return CreatedResponse{Message: "Journal saved", ID: j.ID}
	})
}

// HTTP: GET /api/journals/{user_id}
func (h *TrackerHandler) HandleListJournals(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListJournals, journalView)
}

// HandleDeleteJournal removes one entry by its own id, not the user's.
//
// HTTP: DELETE /api/journals/{id}
func (h *TrackerHandler) HandleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.tracker.DeleteJournal(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Journal deleted"})
}

// HTTP: POST /api/feedback
// REQUEST BODY: {"user_id": 1, "category": "bug", "rating": 4, "message": "..."}
// user_id may be omitted for anonymous feedback.
func (h *TrackerHandler) HandleAddFeedback(w http.ResponseWriter, r *http.Request) {
	create(h, w, r, h.tracker.AddFeedback, func(f *model.Feedback) any {
		return CreatedResponse{Message: "Feedback saved", ID: f.ID}
	})
}

// HTTP: GET /api/feedback/{user_id}
func (h *TrackerHandler) HandleListFeedback(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, h.tracker.ListFeedback, feedbackView)
}

// HandleListAllFeedback returns every user's feedback, including anonymous.
//
// HTTP: GET /api/feedback/all
func (h *TrackerHandler) HandleListAllFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.tracker.ListAllFeedback(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, mapViews(feedback, h.loc, allFeedbackView))
}
