package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

type AdmissionServiceMock struct {
	mock.Mock
}

func (m *AdmissionServiceMock) Search(ctx context.Context, country string) ([]*models.Admission, error) {
	args := m.Called(ctx, country)
	res, _ := args.Get(0).([]*models.Admission)
	return res, args.Error(1)
}

type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Save(ctx context.Context, id string, sess *session.Session) error {
	args := m.Called(ctx, id, sess)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSearchHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	senegal := []*models.Admission{
		{ID: 1, University: "UCAD", Country: "Senegal", City: "Dakar"},
	}

	tests := []struct {
		name           string
		query          string
		sess           *session.Session
		wantCountry    string
		mockResult     []*models.Admission
		mockErr        error
		wantStatusCode int
		wantSavedPref  string
	}{
		{
			name:           "explicit country is searched and remembered",
			query:          "?country=Senegal",
			sess:           &session.Session{Email: "u@example.com"},
			wantCountry:    "Senegal",
			mockResult:     senegal,
			wantStatusCode: http.StatusOK,
			wantSavedPref:  "Senegal",
		},
		{
			name:           "missing country falls back to preference",
			query:          "",
			sess:           &session.Session{Email: "u@example.com", Prefs: map[string]string{"country": "Benin"}},
			wantCountry:    "Benin",
			mockResult:     nil,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no country and no preference lists the directory",
			query:          "",
			sess:           &session.Session{Email: "u@example.com"},
			wantCountry:    "",
			mockResult:     senegal,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "storage failure",
			query:          "?country=Senegal",
			sess:           &session.Session{Email: "u@example.com"},
			wantCountry:    "Senegal",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AdmissionServiceMock)
			storeMock := new(SessionStoreMock)
			handler := New(logger, serviceMock, storeMock)

			serviceMock.On("Search", mock.Anything, tt.wantCountry).
				Return(tt.mockResult, tt.mockErr)
			storeMock.On("Save", mock.Anything, "sid", mock.Anything).Return(nil)

			req := httptest.NewRequest(http.MethodGet, "/universities"+tt.query, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.SessionID, "sid")
			ctx = context.WithValue(ctx, middlewarectx.SessionData, tt.sess)
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			serviceMock.AssertCalled(t, "Search", mock.Anything, tt.wantCountry)

			if tt.wantSavedPref != "" {
				storeMock.AssertCalled(t, "Save", mock.Anything, "sid", mock.Anything)
				assert.Equal(t, tt.wantSavedPref, tt.sess.Prefs["country"])
			} else {
				storeMock.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
			}

			if tt.mockErr == nil {
				var resp response.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, response.StatusOK, resp.Status)
			}
		})
	}
}
