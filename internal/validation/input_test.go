package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("ignat_01"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("1ignat"))
	assert.Error(t, ValidateUsername("игнат"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", MaxUsernameLength+1)))
}

func TestValidateListingName(t *testing.T) {
	assert.NoError(t, ValidateListingName("Xbox One"))
	assert.Error(t, ValidateListingName(""))
	assert.Error(t, ValidateListingName("   "))
	assert.Error(t, ValidateListingName(strings.Repeat("x", MaxListingNameLength+1)))
}

func TestValidateImageURL(t *testing.T) {
	assert.NoError(t, ValidateImageURL("https://example.com/xbox.png"))
	assert.NoError(t, ValidateImageURL("http://example.com/img"))
	// Ссылки без схемы исторически допустимы.
	assert.NoError(t, ValidateImageURL("xbox.com"))

	assert.Error(t, ValidateImageURL(""))
	assert.Error(t, ValidateImageURL("ftp://example.com/img"))
	assert.Error(t, ValidateImageURL(strings.Repeat("a", MaxImageURLLength+1)))
}

func TestValidatePriceWei(t *testing.T) {
	assert.NoError(t, ValidatePriceWei(0))
	assert.NoError(t, ValidatePriceWei(1000))
	assert.Error(t, ValidatePriceWei(-1))
}

func TestValidateAmountWei(t *testing.T) {
	assert.NoError(t, ValidateAmountWei(1))
	assert.Error(t, ValidateAmountWei(0))
	assert.Error(t, ValidateAmountWei(-100))
}
