package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Password(t *testing.T) {
	a, err := NewAccount(RoleAdmin, "  ana@cms.io ", "Ana", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "ana@cms.io", a.Email)
	assert.NotEqual(t, "s3cret", a.PasswordHash)
	assert.True(t, a.CheckPassword("s3cret"))
	assert.False(t, a.CheckPassword("other"))
}

func TestAccount_Validate(t *testing.T) {
	a := &Account{Email: "x@y.z", Role: RoleUser}
	assert.NoError(t, a.Validate())

	a.Email = ""
	assert.Error(t, a.Validate())

	a = &Account{Email: "x@y.z", Role: "root"}
	assert.Error(t, a.Validate())
}

func TestRole(t *testing.T) {
	assert.Equal(t, "admins", RoleAdmin.Table())
	assert.Equal(t, "users", RoleUser.Table())
	assert.Equal(t, RoleUser, RoleAdmin.Other())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("guest").Valid())
}

func TestEmailTakenError(t *testing.T) {
	var err error = &EmailTakenError{Role: RoleAdmin}

	assert.Equal(t, "Email already exists in admins", err.Error())
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

func TestEventRegistry(t *testing.T) {
	reg := NewEventRegistry()

	assert.Len(t, reg, 6)
	assert.Equal(t, AdminTopic, reg["admin.updated"].Topic)
	assert.Equal(t, UserTopic, reg["user.deleted"].Topic)
}

func TestPayloadOf_OmitsHash(t *testing.T) {
	a := &Account{ID: 4, Email: "u@cms.io", PasswordHash: "hash", Role: RoleUser}

	assert.Equal(t, AccountPayload{ID: 4, Email: "u@cms.io", Role: RoleUser}, PayloadOf(a))
	assert.Equal(t, "4", a.PartitionKey())
}
