package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestEffectiveDate_FallbackChain(t *testing.T) {
	approved := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)
	signed := time.Date(2026, time.August, 8, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2026, time.August, 6, 12, 0, 0, 0, time.UTC)
	submitted := time.Date(2026, time.August, 4, 12, 0, 0, 0, time.UTC)

	full := Sale{ApprovedAt: &approved, ContractSignedAt: &signed, UpdatedAt: updated, SubmittedAt: submitted}
	assert.Equal(t, approved, EffectiveDate(full))

	noApproval := Sale{ContractSignedAt: &signed, UpdatedAt: updated, SubmittedAt: submitted}
	assert.Equal(t, signed, EffectiveDate(noApproval))

	onlyUpdated := Sale{UpdatedAt: updated, SubmittedAt: submitted}
	assert.Equal(t, updated, EffectiveDate(onlyUpdated))

	bare := Sale{SubmittedAt: submitted}
	assert.Equal(t, submitted, EffectiveDate(bare))

	// Zero-valued pointers are skipped, not taken at face value.
	var zero time.Time
	zeroApproval := Sale{ApprovedAt: &zero, ContractSignedAt: &signed, UpdatedAt: updated, SubmittedAt: submitted}
	assert.Equal(t, signed, EffectiveDate(zeroApproval))
}

func TestPoints_ValidatedWinsOverExpected(t *testing.T) {
	validated := 4.0
	assert.Equal(t, 4.0, Points(Sale{ExpectedPoints: 7, ValidatedPoints: &validated}))
	assert.Equal(t, 7.0, Points(Sale{ExpectedPoints: 7}))

	// An explicit zero validation is a real value, not a missing one.
	zero := 0.0
	assert.Equal(t, 0.0, Points(Sale{ExpectedPoints: 7, ValidatedPoints: &zero}))
}

func TestPointsImplausible(t *testing.T) {
	assert.True(t, PointsImplausible(0))
	assert.True(t, PointsImplausible(-3))
	assert.True(t, PointsImplausible(math.NaN()))
	assert.True(t, PointsImplausible(math.Inf(1)))
	assert.True(t, PointsImplausible(MaxPlausiblePoints+1))

	assert.False(t, PointsImplausible(0.5))
	assert.False(t, PointsImplausible(MaxPlausiblePoints))
}

func TestScorePoints(t *testing.T) {
	rules := []ScoringRule{
		{Field: "curso", Match: "Inglês Completo", Points: 5},
		{Field: "modalidade", Match: "presencial", Points: 2},
		{Field: "material", Match: "sim", Points: 1},
	}

	answers := datatypes.JSONMap{
		"curso":      "  inglês completo ",
		"modalidade": "online",
		"material":   "SIM",
	}
	assert.Equal(t, 6.0, ScorePoints(answers, rules))

	assert.Equal(t, 0.0, ScorePoints(nil, rules))
	assert.Equal(t, 0.0, ScorePoints(answers, nil))
}

func TestAnswerString_FirstMatchWins(t *testing.T) {
	answers := datatypes.JSONMap{
		"nome_aluno": "",
		"aluno":      " Maria Silva ",
		"email":      "maria@exemplo.com.br",
	}

	assert.Equal(t, "Maria Silva", AnswerString(answers, "nome_aluno", "aluno"))
	assert.Equal(t, "maria@exemplo.com.br", AnswerString(answers, "email", "aluno"))
	assert.Equal(t, "", AnswerString(answers, "telefone"))
}
