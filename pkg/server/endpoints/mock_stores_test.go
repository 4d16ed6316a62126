package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/veridian-labs/warden/pkg/store"
)

// MockMembershipStore implements store.MembershipStore for testing using testify/mock
type MockMembershipStore struct {
	mock.Mock
}

func (m *MockMembershipStore) FetchActiveMemberships(userID int64) ([]store.MembershipRow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.MembershipRow), args.Error(1)
}

// MockPreferenceStore implements store.PreferenceStore for testing using testify/mock
type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) SessionTimeoutMinutes(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockCredentialStore implements store.CredentialStore for testing using testify/mock
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) GetCredential(login string) (*store.Credential, error) {
	args := m.Called(login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Credential), args.Error(1)
}

func (m *MockCredentialStore) VerifyPassword(credential *store.Credential, password []byte) bool {
	args := m.Called(credential, password)
	return args.Bool(0)
}

func (m *MockCredentialStore) UpdatePassword(userID int64, newPassword []byte) error {
	args := m.Called(userID, newPassword)
	return args.Error(0)
}
