package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtRoundtrip(t *testing.T) {
	token, err := JwtGenerate("device-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := JwtValidate(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*JwtCustomClaim)
	require.True(t, ok)
	assert.Equal(t, "device-42", claims.DeviceId)
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	_, err := JwtValidate("not.a.token")
	assert.Error(t, err)
}
