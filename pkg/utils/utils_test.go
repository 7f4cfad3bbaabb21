package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"0", "R$ 0,00"},
		{"87.5", "R$ 87,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.891", "R$ 1.234.567,89"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "12", FormatCount(12))
	assert.Equal(t, "1.234", FormatCount(1234))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "joao_conceicao", Slugify(" João  Conceição "))
	assert.Equal(t, "ana", Slugify("ANA"))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "MARIA SOUZA", TruncateName(" maria souza ", 30))
	assert.Equal(t, "MARIA DA CONCEIÇÃO DOS SANT...", TruncateName("Maria da Conceição dos Santos Oliveira", 30))
	assert.Len(t, []rune(TruncateName("Maria da Conceição dos Santos Oliveira", 30)), 30)
}

func TestParseOptionalYear(t *testing.T) {
	year, err := ParseOptionalYear("")
	require.NoError(t, err)
	assert.Nil(t, year)

	year, err = ParseOptionalYear("2025")
	require.NoError(t, err)
	require.NotNil(t, year)
	assert.Equal(t, 2025, *year)

	_, err = ParseOptionalYear("dois mil")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 12)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "14/10/2025 09:05:00", FormatTimestamp(time.Date(2025, 10, 14, 9, 5, 0, 0, time.UTC)))
}
