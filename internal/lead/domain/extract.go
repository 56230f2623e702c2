package domain

import (
	"fmt"
	"strings"
)

// Fields is the normalized view of a captured submission.
type Fields struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	TrackingID  string `json:"tracking_id,omitempty"`
}

// fieldCandidate pairs a payload key with its normalizer. Candidates are
// evaluated in order and the first non-empty extraction wins, which makes
// the precedence between the many capture-form vocabularies explicit.
type fieldCandidate struct {
	key     string
	extract func(value string) string
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}

func lowered(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	if b.Len() < 8 {
		return ""
	}
	return b.String()
}

var (
	nameCandidates = []fieldCandidate{
		{"name", trimmed},
		{"nome", trimmed},
		{"full_name", trimmed},
		{"fullname", trimmed},
		{"first_name", trimmed},
		{"nome_completo", trimmed},
		{"your-name", trimmed},
	}
	emailCandidates = []fieldCandidate{
		{"email", lowered},
		{"e-mail", lowered},
		{"e_mail", lowered},
		{"mail", lowered},
		{"user_email", lowered},
		{"your-email", lowered},
	}
	phoneCandidates = []fieldCandidate{
		{"phone", digitsOnly},
		{"telefone", digitsOnly},
		{"tel", digitsOnly},
		{"whatsapp", digitsOnly},
		{"celular", digitsOnly},
		{"phone_number", digitsOnly},
	}
	utmSourceCandidates = []fieldCandidate{
		{"utm_source", lowered},
		{"utmsource", lowered},
		{"source", lowered},
	}
	utmMediumCandidates = []fieldCandidate{
		{"utm_medium", lowered},
		{"utmmedium", lowered},
	}
	utmCampaignCandidates = []fieldCandidate{
		{"utm_campaign", lowered},
		{"utmcampaign", lowered},
		{"campaign", lowered},
	}
	trackingCandidates = []fieldCandidate{
		{"gclid", trimmed},
		{"fbclid", trimmed},
		{"tracking_id", trimmed},
		{"trackingid", trimmed},
		{"ref", trimmed},
	}
)

// ExtractFields maps a raw submission onto Fields. Keys are matched
// case-insensitively. When no name candidate matches, the email local part
// is used; failing that, the stored placeholder.
func ExtractFields(payload map[string]any) Fields {
	normalized := make(map[string]string, len(payload))
	for key, raw := range payload {
		if raw == nil {
			continue
		}
		value := strings.TrimSpace(fmt.Sprintf("%v", raw))
		if value == "" {
			continue
		}
		normalized[strings.ToLower(strings.TrimSpace(key))] = value
	}

	fields := Fields{
		Name:        pick(normalized, nameCandidates),
		Email:       pick(normalized, emailCandidates),
		Phone:       pick(normalized, phoneCandidates),
		UTMSource:   pick(normalized, utmSourceCandidates),
		UTMMedium:   pick(normalized, utmMediumCandidates),
		UTMCampaign: pick(normalized, utmCampaignCandidates),
		TrackingID:  pick(normalized, trackingCandidates),
	}

	if fields.Name == "" {
		fields.Name = nameFromEmail(fields.Email)
	}
	if fields.Name == "" {
		fields.Name = PlaceholderName
	}
	return fields
}

func pick(normalized map[string]string, candidates []fieldCandidate) string {
	for _, candidate := range candidates {
		raw, ok := normalized[candidate.key]
		if !ok {
			continue
		}
		if value := candidate.extract(raw); value != "" {
			return value
		}
	}
	return ""
}

// nameFromEmail derives a display name from the email local part, e.g.
// "maria.silva@x.com" → "Maria Silva".
func nameFromEmail(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return ""
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r >= '0' && r <= '9'
	})
	if len(parts) == 0 {
		return ""
	}
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}
