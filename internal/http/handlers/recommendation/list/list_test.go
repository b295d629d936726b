package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/novasports/nova-backend/internal/http/middlewarectx"
	"github.com/novasports/nova-backend/internal/models"
	"github.com/novasports/nova-backend/internal/services/subscription"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListVisible(ctx context.Context, rawNickname string, now time.Time) ([]*models.Recommendation, error) {
	args := m.Called(ctx, rawNickname, now)
	recs, _ := args.Get(0).([]*models.Recommendation)
	return recs, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doList(t *testing.T, service Service, nick string) *httptest.ResponseRecorder {
	t.Helper()
	handler := New(discardLogger(), service)
	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	if nick != "" {
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, nick))
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestListHandler_ReturnsVisibleRecommendations(t *testing.T) {
	recs := []*models.Recommendation{
		{ID: 1, League: "EPL", Home: "Arsenal", Away: "Chelsea", Recommendation: "Over 2.5"},
		{ID: 2, League: "EPL", Home: "Leeds", Away: "Everton", Recommendation: "Under 3.5"},
	}
	service := new(ServiceMock)
	service.On("ListVisible", mock.Anything, "ann", mock.Anything).Return(recs, nil).Once()

	rr := doList(t, service, "ann")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Recommendations []*models.Recommendation `json:"recommendations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, recs, resp.Data.Recommendations)
}

func TestListHandler_NotSubscribedDiffersFromEmptyList(t *testing.T) {
	t.Run("no subscription", func(t *testing.T) {
		service := new(ServiceMock)
		service.On("ListVisible", mock.Anything, "ann", mock.Anything).
			Return(nil, subscription.ErrNotSubscribed).Once()

		rr := doList(t, service, "ann")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "you have to be subscribed to receive recommendations")
	})

	t.Run("subscribed but nothing published", func(t *testing.T) {
		service := new(ServiceMock)
		service.On("ListVisible", mock.Anything, "ann", mock.Anything).
			Return([]*models.Recommendation{}, nil).Once()

		rr := doList(t, service, "ann")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "no recommendations yet")
		assert.NotContains(t, rr.Body.String(), "you have to be subscribed")
	})
}

func TestListHandler_MissingIdentity(t *testing.T) {
	service := new(ServiceMock)
	rr := doList(t, service, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	service.AssertNotCalled(t, "ListVisible", mock.Anything, mock.Anything, mock.Anything)
}

func TestListHandler_ServiceError(t *testing.T) {
	service := new(ServiceMock)
	service.On("ListVisible", mock.Anything, "ann", mock.Anything).
		Return(nil, assert.AnError).Once()

	rr := doList(t, service, "ann")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
