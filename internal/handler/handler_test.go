package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/wellness-tracker/internal/assistant"
	"github.com/sakif/wellness-tracker/internal/auth"
	"github.com/sakif/wellness-tracker/internal/handler"
	sqliteRepo "github.com/sakif/wellness-tracker/internal/repository/sqlite"
	"github.com/sakif/wellness-tracker/internal/service"
)

const testSecret = "handler-test-secret-0123456789"

// MockCompleter stands in for the Groq client.
type MockCompleter struct {
	CapturedReq assistant.CompletionRequest
	Reply       string
	ReturnErr   error
}

func (m *MockCompleter) Complete(_ context.Context, req assistant.CompletionRequest) (*assistant.Completion, error) {
	m.CapturedReq = req
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return &assistant.Completion{Content: m.Reply}, nil
}

// testAPI is the full /api surface over an in-memory database.
type testAPI struct {
	router    http.Handler
	db        *sqliteRepo.DB
	completer *MockCompleter
	tokens    *auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	completer := &MockCompleter{Reply: "I'm here with you."}

	authH := handler.NewAuthHandler(
		service.NewAuthService(db, tokens, auth.NewPasswordServiceWithCost(bcrypt.MinCost), logger), logger)
	trackerH := handler.NewTrackerHandler(service.NewTrackerService(db, logger), time.Local, logger)
	statsH := handler.NewStatsHandler(service.NewStatsService(db, time.Local, logger), logger)
	chatH := handler.NewChatHandler(service.NewChatService(completer, time.Second, logger), logger)
	healthH := handler.NewHealthHandler(db, logger)

	r := chi.NewRouter()
	r.Use(auth.OptionalAuth(tokens))
	r.Get("/", healthH.HandleHome)
	r.Get("/readyz", healthH.HandleReady)
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authH.HandleRegister)
		r.Post("/login", authH.HandleLogin)
		r.Post("/logout", authH.HandleLogout)
		r.Get("/profile/{user_id}", authH.HandleGetProfile)
		r.Put("/profile", authH.HandleUpdateProfile)

		r.Post("/moods", trackerH.HandleAddMood)
		r.Get("/moods/{user_id}", trackerH.HandleListMoods)
		r.Post("/activity", trackerH.HandleAddActivity)
		r.Get("/activity/{user_id}", trackerH.HandleListActivities)
		r.Post("/exercises", trackerH.HandleAddExercise)
		r.Get("/exercises/{user_id}", trackerH.HandleListExercises)
		r.Post("/sleep", trackerH.HandleAddSleep)
		r.Get("/sleep/{user_id}", trackerH.HandleListSleep)
		r.Post("/meditations", trackerH.HandleAddMeditation)
		r.Get("/meditations/{user_id}", trackerH.HandleListMeditations)
		r.Post("/journals", trackerH.HandleAddJournal)
		r.Get("/journals/{user_id}", trackerH.HandleListJournals)
		r.Delete("/journals/{id}", trackerH.HandleDeleteJournal)
		r.Post("/feedback", trackerH.HandleAddFeedback)
		r.Get("/feedback/all", trackerH.HandleListAllFeedback)
		r.Get("/feedback/{user_id}", trackerH.HandleListFeedback)

		r.Get("/stats/{user_id}", statsH.HandleWeekly)
		r.Post("/chat", chatH.HandleChat)
	})

	return &testAPI{router: r, db: db, completer: completer, tokens: tokens}
}

// do sends a request with an optional JSON body and returns the recorder.
func (a *testAPI) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its id via login.
func (a *testAPI) register(t *testing.T, name, email, password string) int64 {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var login handler.LoginResponse
	rr = a.do(t, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	decode(t, rr, &login)
	return login.UserID
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst), rr.Body.String())
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	decode(t, rr, &body)
	return body
}
