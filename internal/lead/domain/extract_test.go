package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields_CandidatePrecedence(t *testing.T) {
	fields := ExtractFields(map[string]any{
		"nome":       "João Pereira",
		"first_name": "João",
		"E-Mail":     " Joao@Exemplo.com.br ",
		"whatsapp":   "+55 (11) 98765-4321",
		"utm_source": "Facebook",
		"campaign":   "matricula-2026",
		"gclid":      "abc123",
	})

	// "name" is absent so "nome" wins over the later candidates.
	assert.Equal(t, "João Pereira", fields.Name)
	assert.Equal(t, "joao@exemplo.com.br", fields.Email)
	assert.Equal(t, "+5511987654321", fields.Phone)
	assert.Equal(t, "facebook", fields.UTMSource)
	assert.Equal(t, "matricula-2026", fields.UTMCampaign)
	assert.Equal(t, "abc123", fields.TrackingID)
}

func TestExtractFields_NameFromEmailLocalPart(t *testing.T) {
	fields := ExtractFields(map[string]any{
		"email": "maria.silva@exemplo.com.br",
	})
	assert.Equal(t, "Maria Silva", fields.Name)
}

func TestExtractFields_PlaceholderWhenNothingUsable(t *testing.T) {
	fields := ExtractFields(map[string]any{
		"utm_medium": "cpc",
	})
	assert.Equal(t, PlaceholderName, fields.Name)
	assert.Equal(t, "cpc", fields.UTMMedium)
}

func TestExtractFields_RejectsShortPhones(t *testing.T) {
	fields := ExtractFields(map[string]any{
		"phone":    "123",
		"telefone": "11 3456-7890",
	})
	// The first candidate normalizes to something too short, so the next
	// one is consulted.
	assert.Equal(t, "1134567890", fields.Phone)
}

func TestExtractFields_NonStringValues(t *testing.T) {
	fields := ExtractFields(map[string]any{
		"name":  42,
		"email": nil,
	})
	assert.Equal(t, "42", fields.Name)
	assert.Equal(t, "", fields.Email)
}
