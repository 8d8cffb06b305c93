package service

import (
	"testing"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	info := LoginInfo{Sub: "auth0|123", Email: "alice@student.vu.nl", Name: "Alice", EmailVerified: true}
	user, err := svc.GetOrCreateUser(info)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	// second login resolves to the same user
	again, err := svc.GetOrCreateUser(info)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateUser_SyncsProfile(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	info := LoginInfo{Sub: "auth0|123", Email: "alice@student.vu.nl", Name: "Alice"}
	user, err := svc.GetOrCreateUser(info)
	require.NoError(t, err)

	info.Name = "Alice B"
	info.EmailVerified = true
	updated, err := svc.GetOrCreateUser(info)
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "Alice B", updated.Name)
	assert.True(t, updated.EmailVerified)
}

func TestGetOrCreateUser_RejectsForeignDomains(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	_, err := svc.GetOrCreateUser(LoginInfo{Sub: "auth0|999", Email: "eve@gmail.com", Name: "Eve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed to sign up")
}
