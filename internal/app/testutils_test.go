package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
	"github.com/curtainup/theater-reservation-system/internal/mailer"
	"github.com/curtainup/theater-reservation-system/internal/mocks"
	appvalidator "github.com/curtainup/theater-reservation-system/internal/validator"
	"github.com/go-chi/chi/v5"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator: appvalidator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:    &mailer.MockMailer{},
		userRepo: &mocks.MockUserRepo{
			GetByIdFunc: func(ctx context.Context, id int) (*domain.User, error) {
				return &domain.User{ID: id, FirstName: "Jamie", Email: "jamie@example.com"}, nil
			},
		},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withUser simulates a request that passed the authentication middleware.
func withUser(r *http.Request, userId int) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKeyUserId, userId)
	return r.WithContext(ctx)
}

// withURLParam injects a chi route parameter for handlers called outside a
// router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

// syncMailer lets tests wait for the background confirmation email.
type syncMailer struct {
	messages chan mailer.MockMessage
}

func newSyncMailer() *syncMailer {
	return &syncMailer{messages: make(chan mailer.MockMessage, 1)}
}

func (m *syncMailer) Send(recipient, templateFile string, data any) error {
	m.messages <- mailer.MockMessage{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	}

	return nil
}

func (m *syncMailer) wait(t *testing.T) mailer.MockMessage {
	t.Helper()

	select {
	case msg := <-m.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for confirmation email")
		return mailer.MockMessage{}
	}
}

func ptr[T any](v T) *T {
	return &v
}
