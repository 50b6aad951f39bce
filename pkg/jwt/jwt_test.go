package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-pruebas"

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "ana@example.com", "pab-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "ana@example.com", "pab-api", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "ana@example.com", "pab-api", -5)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "ana@example.com", "pab-api", 60)
	assert.Error(t, err)
}
