package middlewarectx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novasports/nova-backend/internal/lib/jwt"
)

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		role       any
		wantStatus int
		wantNext   bool
	}{
		{name: "admin passes", role: jwt.RoleAdmin, wantStatus: http.StatusOK, wantNext: true},
		{name: "plain user forbidden", role: jwt.RoleUser, wantStatus: http.StatusForbidden},
		{name: "role missing from context", role: nil, wantStatus: http.StatusForbidden},
		{name: "role of unexpected type", role: 42, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AdminOnly(discardLogger())(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					called = true
					w.WriteHeader(http.StatusOK)
				}))

			req := httptest.NewRequest(http.MethodPost, "/recommendations", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, called)
			if !tt.wantNext {
				assert.Contains(t, rr.Body.String(), "access forbidden, admin only")
			}
		})
	}
}
