package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/models"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
		resolved bool
	}{
		{"US", "United States", true},
		{"DE", "Germany", true},
		{"RU", "Russia", true},
		{"KR", "South Korea", true},
		{"Unknown", "Unknown", false},
		{"ZZZZ", "ZZZZ", false},
		{"", "", false},
	}

	for _, tt := range tests {
		name, ok := CanonicalName(tt.code)
		assert.Equal(t, tt.expected, name, "code %q", tt.code)
		assert.Equal(t, tt.resolved, ok, "code %q", tt.code)
	}
}

func TestGeometryName_Overrides(t *testing.T) {
	assert.Equal(t, "United States of America", GeometryName("United States"))
	assert.Equal(t, "Russian Federation", GeometryName("Russia"))
	assert.Equal(t, "Korea, Republic of", GeometryName("South Korea"))
	assert.Equal(t, "Viet Nam", GeometryName("Vietnam"))
	assert.Equal(t, "Côte d'Ivoire", GeometryName("Ivory Coast"))
	assert.Equal(t, "Timor-Leste", GeometryName("East Timor"))
}

func TestGeometryName_PassThrough(t *testing.T) {
	assert.Equal(t, "Germany", GeometryName("Germany"))
	assert.Equal(t, "Unknown", GeometryName("Unknown"))
}

func TestGeometryName_TableSize(t *testing.T) {
	assert.Len(t, geometryNameOverrides, 18)
}

func TestNormalizer_DisplayNames(t *testing.T) {
	// Arrange
	normalizer := NewNormalizer(getLogger())
	ranking := []models.CountryCount{
		{Country: "US", Messages: 15},
		{Country: "DE", Messages: 3},
		{Country: "Unknown", Messages: 2},
	}

	// Act
	normalized := normalizer.DisplayNames(ranking)

	// Assert: order and counts survive, unresolved labels are kept.
	assert.Equal(t, []models.CountryCount{
		{Country: "United States of America", Messages: 15},
		{Country: "Germany", Messages: 3},
		{Country: "Unknown", Messages: 2},
	}, normalized)
}

func TestNormalizer_DisplayNames_Idempotent(t *testing.T) {
	// Arrange
	normalizer := NewNormalizer(getLogger())
	ranking := []models.CountryCount{
		{Country: "RU", Messages: 7},
		{Country: "FR", Messages: 7},
	}

	// Act
	first := normalizer.DisplayNames(ranking)
	second := normalizer.DisplayNames(ranking)

	// Assert
	assert.Equal(t, first, second)
}

func TestNormalizer_DisplayNames_Empty(t *testing.T) {
	// Arrange
	normalizer := NewNormalizer(getLogger())

	// Act + Assert
	assert.Nil(t, normalizer.DisplayNames(nil))
	assert.Nil(t, normalizer.DisplayNames([]models.CountryCount{}))
}
