package services

import (
	"strconv"
	"testing"
	"time"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) UserService {
	t.Helper()
	kv := repository.NewMemoryKVRepository()
	userR, err := repository.NewUserRepository(kv)
	require.NoError(t, err)
	return NewUserService(userR, 0)
}

func TestLoginWithAdminCredentials(t *testing.T) {
	us := newTestUserService(t)

	user, err := us.Login("s1", models.Credentials{Email: "admin@gmail.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.Id)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "Admin", user.Name)

	admin, err := us.IsAdmin("s1")
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestLoginSynthesizesRegularUser(t *testing.T) {
	us := newTestUserService(t)

	user, err := us.Login("s1", models.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, "jane", user.Name, "display name is the email local part")
	assert.NotZero(t, user.Id)

	current, exists, err := us.CurrentUser("s1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, user.Id, current.Id)

	admin, err := us.IsAdmin("s1")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestLoginValidation(t *testing.T) {
	us := newTestUserService(t)

	tests := []struct {
		name  string
		creds models.Credentials
		field string
	}{
		{"missing email", models.Credentials{Password: "secret"}, "email"},
		{"malformed email", models.Credentials{Email: "not-an-email", Password: "secret"}, "email"},
		{"missing password", models.Credentials{Email: "jane@example.com"}, "password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := us.Login("s1", tc.creds)
			var validation models.ValidationErrors
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation, tc.field)
		})
	}
}

func TestRegister(t *testing.T) {
	us := newTestUserService(t)

	user, err := us.Register("s1", models.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "user", user.Role)

	_, exists, err := us.CurrentUser("s1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLogout(t *testing.T) {
	us := newTestUserService(t)
	_, err := us.Login("s1", models.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, us.Logout("s1"))

	_, exists, err := us.CurrentUser("s1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateProfileRequiresLogin(t *testing.T) {
	us := newTestUserService(t)

	_, err := us.UpdateProfile("s1", models.ProfileUpdate{Name: "New Name"})
	assert.ErrorIs(t, err, models.ErrUnautorized)
}

func TestUpdateProfileMergesNonEmptyFields(t *testing.T) {
	us := newTestUserService(t)
	original, err := us.Login("s1", models.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	updated, err := us.UpdateProfile("s1", models.ProfileUpdate{Phone: "+1 (555) 987-6543"})
	require.NoError(t, err)
	assert.Equal(t, "+1 (555) 987-6543", updated.Phone)
	assert.Equal(t, original.Name, updated.Name, "fields left empty stay untouched")
	assert.Equal(t, original.Email, updated.Email)
}

func TestAddOrderPrependsToHistory(t *testing.T) {
	us := newTestUserService(t)
	_, err := us.Login("s1", models.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, us.AddOrder("s1", entities.Order{Id: 100, Date: time.Now().UTC()}))
	require.NoError(t, us.AddOrder("s1", entities.Order{Id: 200, Date: time.Now().UTC()}))

	user, exists, err := us.CurrentUser("s1")
	require.NoError(t, err)
	require.True(t, exists)
	require.Len(t, user.OrderHistory, 2)
	assert.Equal(t, int64(200), user.OrderHistory[0].Id, "most recent order first")
	assert.Equal(t, int64(100), user.OrderHistory[1].Id)
}

func TestAddOrderIsNoopForGuests(t *testing.T) {
	us := newTestUserService(t)
	require.NoError(t, us.AddOrder("s1", entities.Order{Id: 100}))
}

func TestStorageId(t *testing.T) {
	us := newTestUserService(t)

	uid, err := us.StorageId("s1")
	require.NoError(t, err)
	assert.Equal(t, "guest-s1", uid)

	user, err := us.Login("s1", models.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	uid, err = us.StorageId("s1")
	require.NoError(t, err)
	assert.NotEqual(t, "guest-s1", uid, "logging in swaps the live namespace")
	assert.Equal(t, strconv.FormatInt(user.Id, 10), uid)

	require.NoError(t, us.Logout("s1"))
	uid, err = us.StorageId("s1")
	require.NoError(t, err)
	assert.Equal(t, "guest-s1", uid)
}

func TestStoredPasswordIsHashed(t *testing.T) {
	kv := repository.NewMemoryKVRepository()
	userR, err := repository.NewUserRepository(kv)
	require.NoError(t, err)
	us := NewUserService(userR, 0)

	_, err = us.Login("s1", models.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	user, exists, err := userR.GetCurrentUser("s1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.NotEmpty(t, user.Password)
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, userR.VerifyPassword(user.Password, "secret"))
}
