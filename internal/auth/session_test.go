package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"apexbank/internal/mockdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// memStore is an in-memory Persister.
type memStore struct {
	values map[string][]byte
	err    error
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}

type SessionTestSuite struct {
	suite.Suite
	data     *mockdata.Dataset
	password Password
	store    *memStore
	session  *Session
	ctx      context.Context
}

func (suite *SessionTestSuite) SetupSuite() {
	suite.data = mockdata.Generate(mockdata.Options{
		Now:  time.Date(2018, time.November, 28, 12, 0, 0, 0, time.UTC),
		Seed: 7,
	})
	pw, err := NewPassword(mockdata.DefaultGlobalPassword)
	require.NoError(suite.T(), err)
	suite.password = pw
	suite.ctx = context.Background()
}

func (suite *SessionTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.session = NewSession(suite.data, suite.password, suite.store, "")
}

func (suite *SessionTestSuite) TestStartsAnonymous() {
	assert.Equal(suite.T(), Anonymous, suite.session.State().Status())
}

func (suite *SessionTestSuite) TestGeorgeKinseySignsIn() {
	res := suite.session.Login("georgekinsey@gmail.com", mockdata.DefaultGlobalPassword)
	require.True(suite.T(), res.Success)
	assert.Equal(suite.T(), PendingVerification, suite.session.State().Status())

	res, err := suite.session.VerifyOTP(suite.ctx, "000000")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), res.Success)
	assert.Equal(suite.T(), OTPMismatch, res.Kind)
	assert.Equal(suite.T(), "Invalid verification code", res.Message)
	assert.Equal(suite.T(), PendingVerification, suite.session.State().Status())

	res, err = suite.session.VerifyOTP(suite.ctx, "678943")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), res.Success)

	state := suite.session.State()
	assert.Equal(suite.T(), Authenticated, state.Status())
	assert.Nil(suite.T(), state.Pending)
	require.NotNil(suite.T(), state.User)
	assert.Equal(suite.T(), "user-002", state.User.ID)

	raw, ok := suite.store.values[StorageKey]
	require.True(suite.T(), ok, "profile should be persisted")
	assert.Contains(suite.T(), string(raw), "georgekinsey@gmail.com")
}

func (suite *SessionTestSuite) TestLoginFailures() {
	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"unknown email", "nobody@example.com", mockdata.DefaultGlobalPassword, "No account found with this email"},
		{"wrong password", "amelia.kinsey@coutts.com", "hunter2", "Incorrect password"},
		{"empty email", "  ", mockdata.DefaultGlobalPassword, "Email and password are required"},
		{"empty password", "amelia.kinsey@coutts.com", "", "Email and password are required"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			res := suite.session.Login(tt.email, tt.password)
			assert.False(suite.T(), res.Success)
			assert.Equal(suite.T(), CredentialMismatch, res.Kind)
			assert.Equal(suite.T(), tt.message, res.Message)
			assert.True(suite.T(), errors.Is(res.Err(), ErrCredentialMismatch))
			assert.Equal(suite.T(), Anonymous, suite.session.State().Status())
		})
	}
}

func (suite *SessionTestSuite) TestEmailIsCaseInsensitive() {
	res := suite.session.Login("  Mary.Kinsey@COUTTS.com ", mockdata.DefaultGlobalPassword)
	assert.True(suite.T(), res.Success)
	assert.Equal(suite.T(), "user-003", suite.session.State().Pending.ID)
}

func (suite *SessionTestSuite) TestVerifyWithoutPendingLogin() {
	res, err := suite.session.VerifyOTP(suite.ctx, "678943")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), res.Success)
	assert.Equal(suite.T(), "No pending login session", res.Message)
	assert.True(suite.T(), errors.Is(res.Err(), ErrOTPMismatch))
}

func (suite *SessionTestSuite) TestOTPBelongsToPendingUser() {
	require.True(suite.T(), suite.session.Login("georgekinsey@gmail.com", mockdata.DefaultGlobalPassword).Success)

	// Amelia's first code.
	res, err := suite.session.VerifyOTP(suite.ctx, "345912")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), res.Success)
	assert.Equal(suite.T(), PendingVerification, suite.session.State().Status())
}

func (suite *SessionTestSuite) TestLogoutClearsPersistedRecord() {
	suite.signIn("georgekinsey@gmail.com", "678943")

	require.NoError(suite.T(), suite.session.Logout(suite.ctx))
	assert.Equal(suite.T(), Anonymous, suite.session.State().Status())
	assert.Empty(suite.T(), suite.store.values)
}

func (suite *SessionTestSuite) TestRestore() {
	suite.signIn("georgekinsey@gmail.com", "678943")

	restored := NewSession(suite.data, suite.password, suite.store, StorageKey)
	require.NoError(suite.T(), restored.Restore(suite.ctx))
	state := restored.State()
	assert.Equal(suite.T(), Authenticated, state.Status())
	assert.Equal(suite.T(), "George Kinsey", state.User.Name)
}

func (suite *SessionTestSuite) TestRestoreDiscardsMalformedRecord() {
	suite.store.values[StorageKey] = []byte("{not json")

	require.NoError(suite.T(), suite.session.Restore(suite.ctx))
	assert.Equal(suite.T(), Anonymous, suite.session.State().Status())
	_, ok := suite.store.values[StorageKey]
	assert.False(suite.T(), ok, "malformed record should be removed")
}

func (suite *SessionTestSuite) TestRestoreWithNothingStored() {
	require.NoError(suite.T(), suite.session.Restore(suite.ctx))
	assert.Equal(suite.T(), Anonymous, suite.session.State().Status())
}

func (suite *SessionTestSuite) TestStorageFailureStillSignsIn() {
	require.True(suite.T(), suite.session.Login("georgekinsey@gmail.com", mockdata.DefaultGlobalPassword).Success)
	suite.store.err = errors.New("disk full")

	res, err := suite.session.VerifyOTP(suite.ctx, "678943")
	assert.Error(suite.T(), err)
	assert.True(suite.T(), res.Success)
	assert.Equal(suite.T(), Authenticated, suite.session.State().Status())
}

func (suite *SessionTestSuite) TestResendOTP() {
	assert.False(suite.T(), suite.session.ResendOTP().Success)

	require.True(suite.T(), suite.session.Login("georgekinsey@gmail.com", mockdata.DefaultGlobalPassword).Success)
	assert.True(suite.T(), suite.session.ResendOTP().Success)
	assert.Equal(suite.T(), PendingVerification, suite.session.State().Status())
}

func (suite *SessionTestSuite) TestReloginWhileSignedIn() {
	suite.signIn("georgekinsey@gmail.com", "678943")

	require.True(suite.T(), suite.session.Login("amelia.kinsey@coutts.com", mockdata.DefaultGlobalPassword).Success)
	state := suite.session.State()
	assert.Equal(suite.T(), Authenticated, state.Status(), "the signed-in user keeps access")
	assert.True(suite.T(), state.Verifying())
	assert.Equal(suite.T(), "user-002", state.User.ID)
	assert.Equal(suite.T(), "user-001", state.Pending.ID)

	res, err := suite.session.VerifyOTP(suite.ctx, "345912")
	require.NoError(suite.T(), err)
	require.True(suite.T(), res.Success)
	state = suite.session.State()
	assert.Equal(suite.T(), "user-001", state.User.ID)
	assert.False(suite.T(), state.Verifying())
}

func (suite *SessionTestSuite) TestLogoutWhilePending() {
	tests := []struct {
		name     string
		signedIn bool
	}{
		{"from anonymous", false},
		{"during re-login", true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			if tt.signedIn {
				suite.signIn("georgekinsey@gmail.com", "678943")
				require.Contains(suite.T(), suite.store.values, StorageKey)
			}
			require.True(suite.T(), suite.session.Login("mary.kinsey@coutts.com", mockdata.DefaultGlobalPassword).Success)
			require.True(suite.T(), suite.session.State().Verifying())

			require.NoError(suite.T(), suite.session.Logout(suite.ctx))
			state := suite.session.State()
			assert.Nil(suite.T(), state.Pending)
			assert.Nil(suite.T(), state.User)
			assert.Equal(suite.T(), Anonymous, state.Status())
			assert.NotContains(suite.T(), suite.store.values, StorageKey)

			res, err := suite.session.VerifyOTP(suite.ctx, "557689")
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), "No pending login session", res.Message)
		})
	}
}

func (suite *SessionTestSuite) TestRestoreDiscardsUnknownUser() {
	suite.store.values[StorageKey] = []byte(`{"id":"user-999","name":"Nobody"}`)

	require.NoError(suite.T(), suite.session.Restore(suite.ctx))
	assert.Equal(suite.T(), Anonymous, suite.session.State().Status())
	assert.NotContains(suite.T(), suite.store.values, StorageKey)
}

func (suite *SessionTestSuite) TestRestoreUsesDirectoryProfile() {
	suite.store.values[StorageKey] = []byte(`{"id":"user-002","name":"Stale Name"}`)

	require.NoError(suite.T(), suite.session.Restore(suite.ctx))
	state := suite.session.State()
	require.NotNil(suite.T(), state.User)
	assert.Equal(suite.T(), "George Kinsey", state.User.Name)
}

func (suite *SessionTestSuite) TestPersistedRecordIsProfileJSON() {
	suite.signIn("georgekinsey@gmail.com", "678943")

	var record map[string]any
	require.NoError(suite.T(), json.Unmarshal(suite.store.values[StorageKey], &record))
	assert.Equal(suite.T(), "user-002", record["id"])
	assert.Equal(suite.T(), "George Kinsey", record["name"])
}

func (suite *SessionTestSuite) signIn(email, otp string) {
	require.True(suite.T(), suite.session.Login(email, mockdata.DefaultGlobalPassword).Success)
	res, err := suite.session.VerifyOTP(suite.ctx, otp)
	require.NoError(suite.T(), err)
	require.True(suite.T(), res.Success)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func TestPassword(t *testing.T) {
	pw, err := NewPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, pw.Matches("s3cret"))
	assert.False(t, pw.Matches("S3cret"))

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	fromHash, err := PasswordFromHash(hash)
	require.NoError(t, err)
	assert.True(t, fromHash.Matches("s3cret"))

	_, err = PasswordFromHash("plain-text")
	assert.Error(t, err)

	assert.False(t, Password{}.Matches(""))
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := GenerateSessionToken()
	require.NoError(t, err)
	b, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
