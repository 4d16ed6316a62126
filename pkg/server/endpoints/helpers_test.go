package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/config"
	"github.com/veridian-labs/warden/pkg/revocation"
	"github.com/veridian-labs/warden/pkg/server"
	"github.com/veridian-labs/warden/pkg/session"
	"github.com/veridian-labs/warden/pkg/store"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func editorRows() []store.MembershipRow {
	return []store.MembershipRow{
		{OrganizationID: 10, OrganizationName: "Acme", RoleID: 1, RoleName: "Editor", PolicySlug: "model:read", PolicyName: "View models"},
		{OrganizationID: 10, OrganizationName: "Acme", RoleID: 1, RoleName: "Editor", PolicySlug: "model:update", PolicyName: "Edit models"},
	}
}

func adminRows() []store.MembershipRow {
	return []store.MembershipRow{
		{OrganizationID: 10, OrganizationName: "Acme", RoleID: 2, RoleName: "Admin", PolicySlug: "user:manage_sessions", PolicyName: "Manage sessions"},
	}
}

// newTestServer wires a server over mocked stores with all endpoints
// registered. The membership rows decide what any issued session can do.
func newTestServer(t *testing.T, rows []store.MembershipRow) (*server.Server, *MockCredentialStore) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	memberships := new(MockMembershipStore)
	memberships.On("FetchActiveMemberships", mock.Anything).Return(rows, nil).Maybe()

	preferences := new(MockPreferenceStore)
	preferences.On("SessionTimeoutMinutes", mock.Anything).Return(60, nil).Maybe()

	credentials := new(MockCredentialStore)

	cat := catalog.Builtin()
	aggregator := authz.NewAggregator(memberships, cat, log)
	issuer := session.NewIssuer(testKey, aggregator, preferences, log)
	hub := revocation.NewHub(log, time.Minute, nil)

	cfg := &config.Config{BindAddress: "127.0.0.1", Port: 8080}
	srv := server.NewServer(cfg, nil, log, cat, aggregator, issuer, hub, credentials)
	RegisterAll(srv)

	return srv, credentials
}

// issueToken signs a session for the test server's issuer.
func issueToken(t *testing.T, srv *server.Server, userID int64, login string) string {
	t.Helper()
	token, _, err := srv.Issuer.Issue(userID, login, "")
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, srv *server.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
