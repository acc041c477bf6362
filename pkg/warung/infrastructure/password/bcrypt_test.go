package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/password"
)

func TestBcryptManager(t *testing.T) {
	manager := password.NewBcryptManager()

	hashed, err := manager.Hash("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hashed)

	ok, err := manager.Check(hashed, "rahasia123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = manager.Check(hashed, "salah")
	require.NoError(t, err)
	assert.False(t, ok)
}
