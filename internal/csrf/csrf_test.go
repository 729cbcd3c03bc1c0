package csrf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)

	assert.True(t, ValidateToken(token, token))
	assert.False(t, ValidateToken(token, "other"))
	assert.False(t, ValidateToken("", token))
	assert.False(t, ValidateToken(token, ""))
}
