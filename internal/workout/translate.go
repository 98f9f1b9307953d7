package workout

// errorTranslations rewrites known workouts API messages into Portuguese.
var errorTranslations = map[string]string{
	"Workout with the same exerciseInfoId and division already exists": "Este exercicio já existe na divisão selecionada",
}

// TranslateMessages maps each server message through the translation table.
// Messages without an entry pass through unchanged.
func TranslateMessages(msgs []string) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		if t, ok := errorTranslations[m]; ok {
			out[i] = t
		} else {
			out[i] = m
		}
	}
	return out
}
