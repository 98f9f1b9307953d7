package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claude/treino/internal/models"
)

func validDraft() models.WorkoutDraft {
	return models.WorkoutDraft{
		ExerciseName: "Remada curvada",
		Selection:    models.Selected(models.ExerciseCandidate{ID: "r1", Name: "Remada curvada", Grouping: "Costas"}),
		Repetitions:  "10",
		Series:       "4",
		Weight:       "50",
		Division:     "B",
	}
}

// TestValidateValidDraft verifies a complete draft passes.
func TestValidateValidDraft(t *testing.T) {
	assert.Nil(t, Validate(validDraft()))
}

// TestValidateWeight covers the weight rules, which allow fractions.
func TestValidateWeight(t *testing.T) {
	tests := []struct {
		weight string
		want   string
	}{
		{"10.75", ""},
		{"1", ""},
		{"1e2", "O peso deve ser um número"},
		{"0x10", "O peso deve ser um número"},
		{"1_000", "O peso deve ser um número"},
		{"1.2.3", "O peso deve ser um número"},
		{"0.5", "O peso deve ser no mínimo 1"},
		{"0", "O peso deve ser no mínimo 1"},
		{"dez", "O peso deve ser um número"},
		{"NaN", "O peso deve ser um número"},
		{"Inf", "O peso deve ser um número"},
		{"99999999999", "O peso deve ser um número"},
		{"   ", "O peso é obrigatório"},
	}
	for _, tt := range tests {
		t.Run(tt.weight, func(t *testing.T) {
			d := validDraft()
			d.Weight = tt.weight
			errs := Validate(d)
			if tt.want == "" {
				assert.Nil(t, errs)
				return
			}
			assert.Equal(t, ValidationErrors{{Field: FieldWeight, Message: tt.want}}, errs)
		})
	}
}

// TestValidateSeries covers the series rules.
func TestValidateSeries(t *testing.T) {
	tests := []struct {
		series string
		want   string
	}{
		{"3", ""},
		{" 3 ", ""},
		{"3.0", ""},
		{"3.2", "A quantidade de séries deve ser um número inteiro"},
		{"-4", "A quantidade de séries deve ser no mínimo 1"},
		{"três", "A quantidade de séries deve ser um número"},
		{"1e3", "A quantidade de séries deve ser um número"},
		{"", "A quantidade de séries é obrigatória"},
	}
	for _, tt := range tests {
		t.Run(tt.series, func(t *testing.T) {
			d := validDraft()
			d.Series = tt.series
			errs := Validate(d)
			if tt.want == "" {
				assert.Nil(t, errs)
				return
			}
			assert.True(t, errs.has(FieldSeries))
			assert.Equal(t, tt.want, errs.Error())
		})
	}
}

// TestValidateRequiresExerciseAndDivision verifies the selection fields are
// checked even though the numeric fields are valid.
func TestValidateRequiresExerciseAndDivision(t *testing.T) {
	d := validDraft()
	d.Selection = models.NoSelection()
	d.Division = ""

	errs := Validate(d)
	assert.True(t, errs.has(FieldExercise))
	assert.True(t, errs.has(FieldDivision))
	assert.False(t, errs.has(FieldWeight))
	assert.Equal(t, "Selecione um exercício da lista, Selecione uma divisão", errs.Error())
}

// TestBuildRequest verifies integer conversion and weight truncation.
func TestBuildRequest(t *testing.T) {
	d := validDraft()
	d.Weight = "22.9"
	req, truncated := buildRequest(d)
	assert.True(t, truncated)
	assert.Equal(t, models.CreateWorkoutRequest{
		AmountOfRepetitions: 10, AmountOfSeries: 4, Weight: 22,
		ExerciseInfoID: "r1", Division: "B",
	}, req)

	d.Weight = "40.0"
	req, truncated = buildRequest(d)
	assert.False(t, truncated)
	assert.Equal(t, 40, req.Weight)
}

// TestTranslateMessages verifies mapped messages are rewritten and others kept.
func TestTranslateMessages(t *testing.T) {
	got := TranslateMessages([]string{
		"Workout with the same exerciseInfoId and division already exists",
		"Unauthorized",
	})
	assert.Equal(t, []string{"Este exercicio já existe na divisão selecionada", "Unauthorized"}, got)
	assert.Empty(t, TranslateMessages(nil))
}
