package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/warden/pkg/store"
)

func TestLoginEndpoint(t *testing.T) {
	srv, credentials := newTestServer(t, editorRows())

	alice := &store.Credential{UserID: 7, Login: "alice", DisplayName: "Alice A", PasswordHash: []byte("hash")}
	credentials.On("GetCredential", "alice").Return(alice, nil)
	credentials.On("VerifyPassword", alice, []byte("hunter2")).Return(true)
	credentials.On("VerifyPassword", alice, mock.Anything).Return(false)

	t.Run("valid credentials issue a session", func(t *testing.T) {
		w := doJSON(t, srv, "POST", "/authn/login", "", LoginRequest{Login: "alice", Password: "hunter2"})
		requireStatus(t, w, http.StatusOK)

		resp := decodeBody[LoginResponse](t, w)
		require.NotEmpty(t, resp.Token)

		claims, err := srv.Issuer.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "alice", claims.Login)
		assert.Equal(t, "Editor", claims.PrimaryRole())
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, srv, "POST", "/authn/login", "", LoginRequest{Login: "alice", Password: "wrong"})
		requireStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown login gets the same response", func(t *testing.T) {
		credentials.On("GetCredential", "mallory").Return(nil, assert.AnError)

		known := doJSON(t, srv, "POST", "/authn/login", "", LoginRequest{Login: "alice", Password: "wrong"})
		unknown := doJSON(t, srv, "POST", "/authn/login", "", LoginRequest{Login: "mallory", Password: "wrong"})

		// Uniform failure: identical status and body for both factors
		assert.Equal(t, known.Code, unknown.Code)
		assert.Equal(t, known.Body.String(), unknown.Body.String())
	})

	t.Run("missing login", func(t *testing.T) {
		w := doJSON(t, srv, "POST", "/authn/login", "", LoginRequest{Password: "hunter2"})
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := doJSON(t, srv, "POST", "/authn/login", "", nil)
		requireStatus(t, req, http.StatusBadRequest)
	})
}
