package create

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/novasports/nova-backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Add(ctx context.Context, req models.DummyRecommendation) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doCreate(t *testing.T, service Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := New(discardLogger(), service)
	req := httptest.NewRequest(http.MethodPost, "/recommendations", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestCreateHandler_Success(t *testing.T) {
	service := new(ServiceMock)
	service.On("Add", mock.Anything, models.DummyRecommendation{
		League:         "EPL",
		Home:           "Arsenal",
		Away:           "Chelsea",
		Recommendation: "Over 2.5",
	}).Return(7, nil).Once()

	rr := doCreate(t, service, `{"league":"EPL","home":"Arsenal","away":"Chelsea","recommendation":"Over 2.5"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":7`)
	service.AssertExpectations(t)
}

func TestCreateHandler_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "recommendation text missing", body: `{"league":"EPL","home":"Arsenal","away":"Chelsea"}`},
		{name: "home team name too long", body: `{"league":"EPL","home":"` + string(bytes.Repeat([]byte("a"), 40)) + `","away":"Chelsea","recommendation":"Over 2.5"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			rr := doCreate(t, service, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			service.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateHandler_ServiceError(t *testing.T) {
	service := new(ServiceMock)
	service.On("Add", mock.Anything, mock.Anything).Return(0, assert.AnError).Once()

	rr := doCreate(t, service, `{"league":"EPL","home":"Arsenal","away":"Chelsea","recommendation":"Over 2.5"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
