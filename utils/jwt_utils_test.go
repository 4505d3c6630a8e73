package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajputritesh1907/taskbackend/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("lena@example.com", "team-leader")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := utils.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "lena@example.com", claims.Email)
	assert.Equal(t, "team-leader", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := utils.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateToken("lena@example.com", "team-leader")
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = utils.ValidateToken(token)
	assert.Error(t, err)
}
