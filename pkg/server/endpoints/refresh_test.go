package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, editorRows())
	token := issueToken(t, srv, 7, "alice")

	t.Run("refresh returns a new valid token", func(t *testing.T) {
		w := doJSON(t, srv, "POST", "/session/refresh", token, nil)
		requireStatus(t, w, http.StatusOK)

		resp := decodeBody[LoginResponse](t, w)
		require.NotEmpty(t, resp.Token)

		claims, err := srv.Issuer.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
	})

	t.Run("missing authorization", func(t *testing.T) {
		w := doJSON(t, srv, "POST", "/session/refresh", "", nil)
		requireStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := doJSON(t, srv, "POST", "/session/refresh", "garbage", nil)
		requireStatus(t, w, http.StatusUnauthorized)
	})
}
