package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kobo/backend/internal/infrastructure/auth"
	"github.com/kobo/backend/internal/infrastructure/config"
	"github.com/kobo/backend/internal/interfaces/http/middleware"
	"github.com/kobo/backend/internal/interfaces/http/router"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		ExpirationHours: 1,
		Issuer:          "kobo-backend-test",
	})
	authenticator := auth.NewAuthenticator(config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	}, jwtService, auth.NewInMemorySessionRevoker())

	handler := NewAuthHandler(authenticator)

	engine := gin.New()
	router.NewRouter(engine, router.WithSessionMiddleware(middleware.SessionAuth(authenticator))).
		RegisterPublic(handler).
		Register(router.RegistrarFunc(handler.RegisterProtectedRoutes)).
		Setup()
	return engine
}

func TestAuthHandler_LoginAndLogout(t *testing.T) {
	engine := newAuthTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin",
		"password": "correct-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Bearer", data["token_type"])

	// Logout needs a session
	w = doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := doJSONWithToken(t, engine, http.MethodPost, "/api/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, req.Code)

	// The token is revoked afterwards
	req = doJSONWithToken(t, engine, http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusUnauthorized, req.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	engine := newAuthTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	engine := newAuthTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
