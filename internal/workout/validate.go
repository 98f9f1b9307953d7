package workout

import (
	"math"
	"strconv"
	"strings"

	"github.com/claude/treino/internal/models"
)

// Field names used in validation results, matching the form inputs.
const (
	FieldRepetitions = "amountOfRepetitions"
	FieldSeries      = "amountOfSeries"
	FieldWeight      = "weight"
	FieldExercise    = "exerciseInfoId"
	FieldDivision    = "division"
)

// FieldError is one violated rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists every violated rule of a draft, in form order.
type ValidationErrors []FieldError

// Error joins all messages into the single notice shown to the user.
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// has reports whether field has a violation.
func (v ValidationErrors) has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

type numberRule struct {
	field      string
	integer    bool
	required   string
	notNumber  string
	notInteger string
	belowMin   string
}

var (
	repetitionsRule = numberRule{
		field:      FieldRepetitions,
		integer:    true,
		required:   "A quantidade de repetições é obrigatória",
		notNumber:  "A quantidade de repetições deve ser um número",
		notInteger: "A quantidade de repetições deve ser um número inteiro",
		belowMin:   "A quantidade de repetições deve ser no mínimo 1",
	}
	seriesRule = numberRule{
		field:      FieldSeries,
		integer:    true,
		required:   "A quantidade de séries é obrigatória",
		notNumber:  "A quantidade de séries deve ser um número",
		notInteger: "A quantidade de séries deve ser um número inteiro",
		belowMin:   "A quantidade de séries deve ser no mínimo 1",
	}
	weightRule = numberRule{
		field:     FieldWeight,
		required:  "O peso é obrigatório",
		notNumber: "O peso deve ser um número",
		belowMin:  "O peso deve ser no mínimo 1",
	}
)

const (
	msgExerciseRequired = "Selecione um exercício da lista"
	msgDivisionRequired = "Selecione uma divisão"
)

// parseNumber reads raw form text as a finite number. Whitespace is ignored.
// Only plain decimals are accepted: exponents, hex and digit separators are
// not numbers here. Values outside the int32 range are treated as not
// numeric since the API stores them as integers.
func parseNumber(raw string) (float64, bool) {
	s := strings.Join(strings.Fields(raw), "")
	if !isDecimal(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return f, true
}

// isDecimal reports whether s is an optionally signed decimal such as
// "12", "-3" or "10.75".
func isDecimal(s string) bool {
	s = strings.TrimLeft(s, "+-")
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1 && len(s) == digits+dots
}

// check returns the first message violated by raw, or "".
func (r numberRule) check(raw string) string {
	// Blank input gets the required message. A yup number schema would
	// cast it to NaN and report "deve ser um número" instead.
	if strings.TrimSpace(raw) == "" {
		return r.required
	}
	f, ok := parseNumber(raw)
	if !ok {
		return r.notNumber
	}
	if r.integer && f != math.Trunc(f) {
		return r.notInteger
	}
	if f < 1 {
		return r.belowMin
	}
	return ""
}

// Validate checks a draft against every rule and returns all violations,
// or nil when the draft can be submitted.
func Validate(d models.WorkoutDraft) ValidationErrors {
	var errs ValidationErrors
	for _, c := range []struct {
		rule numberRule
		raw  string
	}{
		{repetitionsRule, d.Repetitions},
		{seriesRule, d.Series},
		{weightRule, d.Weight},
	} {
		if msg := c.rule.check(c.raw); msg != "" {
			errs = append(errs, FieldError{Field: c.rule.field, Message: msg})
		}
	}
	if !d.Selection.IsSelected() {
		errs = append(errs, FieldError{Field: FieldExercise, Message: msgExerciseRequired})
	}
	if _, err := models.ParseDivision(d.Division); err != nil {
		errs = append(errs, FieldError{Field: FieldDivision, Message: msgDivisionRequired})
	}
	return errs
}

// buildRequest converts a validated draft into the wire request. The weight
// is truncated toward zero because the API stores integers; truncated
// reports whether a fractional part was dropped.
func buildRequest(d models.WorkoutDraft) (req models.CreateWorkoutRequest, truncated bool) {
	reps, _ := parseNumber(d.Repetitions)
	series, _ := parseNumber(d.Series)
	weight, _ := parseNumber(d.Weight)
	c, _ := d.Selection.Candidate()

	return models.CreateWorkoutRequest{
		AmountOfRepetitions: int(reps),
		AmountOfSeries:      int(series),
		Weight:              int(math.Trunc(weight)),
		ExerciseInfoID:      c.ID,
		Division:            d.Division,
	}, weight != math.Trunc(weight)
}
