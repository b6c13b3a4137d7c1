package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/jwt"
	jwtMocks "rental/infras/jwt/mocks"
	"rental/infras/otel/mocks"
	"rental/permissions"
	"rental/shared/constant"
	"rental/transport/http/middleware"
)

func newRouter(t *testing.T, validate func(m *jwtMocks.MockJWT)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	validate(jwtService)

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/properties/", Method: http.MethodGet, Skip: true},
			{Path: "/v1/bookings/{id}/approve", Method: http.MethodPatch, Permissions: []string{constant.RoleOwner}},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), perms, &config.Config{})

	echoUser := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(user))
	}

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(authRole.Auth, authRole.RBAC)
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", echoUser)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Patch("/{id}/approve", echoUser)
		})
	})

	return router
}

func claimsFor(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "user@example.com", Role: role, TokenID: "token-1", Type: jwt.AccessToken}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		header   string
		validate func(m *jwtMocks.MockJWT)
		wantCode int
		wantBody string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			path:     "/v1/properties",
			validate: func(_ *jwtMocks.MockJWT) {},
			wantCode: http.StatusOK,
		},
		{
			name:     "protected route without token",
			method:   http.MethodPatch,
			path:     "/v1/bookings/b-1/approve",
			validate: func(_ *jwtMocks.MockJWT) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "owner may approve",
			method: http.MethodPatch,
			path:   "/v1/bookings/b-1/approve",
			header: "Bearer token",
			validate: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(claimsFor(constant.RoleOwner), nil)
			},
			wantCode: http.StatusOK,
			wantBody: "user-1",
		},
		{
			name:   "customer may not approve",
			method: http.MethodPatch,
			path:   "/v1/bookings/b-1/approve",
			header: "Bearer token",
			validate: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(claimsFor(constant.RoleCustomer), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "expired token",
			method: http.MethodPatch,
			path:   "/v1/bookings/b-1/approve",
			header: "Bearer token",
			validate: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "incomplete claims",
			method: http.MethodPatch,
			path:   "/v1/bookings/b-1/approve",
			header: "Bearer token",
			validate: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{Email: "user@example.com"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, tt.validate)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
