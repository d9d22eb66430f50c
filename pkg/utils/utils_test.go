package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "seiko-presage-srpb41", Slugify("  Seiko  Presage SRPB41! "))
	assert.Equal(t, "", Slugify("***"))
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Grandfather Clock Walnut")
	assert.True(t, strings.HasPrefix(sku, "GRANDFATHER-"), sku)
	assert.Len(t, sku[strings.LastIndex(sku, "-")+1:], 6)

	assert.True(t, strings.HasPrefix(GenerateSKU("!!!"), "SKU-"))
	assert.NotEqual(t, GenerateSKU("Rolex"), GenerateSKU("Rolex"))
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "clockshop", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "Ada", "ada@example.com", []string{"cashier"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.True(t, claims.HasRole("cashier"))
	assert.False(t, claims.HasRole("admin"))
}

func TestJWTManager_RejectsForeignTokens(t *testing.T) {
	issuer := NewJWTManager("secret", "clockshop", time.Hour)
	token, err := issuer.GenerateAccessToken(uuid.New(), "Ada", "", nil)
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", "clockshop", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)

	_, err = NewJWTManager("secret", "someone-else", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)

	expired, err := NewJWTManager("secret", "clockshop", -time.Minute).GenerateAccessToken(uuid.New(), "Ada", "", nil)
	require.NoError(t, err)
	_, err = issuer.ValidateAccessToken(expired)
	assert.Error(t, err)
}
