//go:build unit || e2e

package authtest

import (
	"encoding/json"
	"net/http"
	"testing"

	"charterdesk/internal/handler/dto/request"
	"charterdesk/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginAdmin logs in with the back-office credential and returns the
// bearer token.
func LoginAdmin(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken, "Access token missing in login response")

	return resp.AccessToken
}
