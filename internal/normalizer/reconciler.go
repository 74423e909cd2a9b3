package normalizer

// Reconcile pairs ingredients and measures by position and keeps only pairs
// where both sides are non-empty. Pairing stops at the shorter list.
// Pairs are never matched by content: if upstream compaction shifted one list,
// the shifted pairs survive.
func Reconcile(ingredients, measures []string) ([]string, []string) {
	n := min(len(ingredients), len(measures))

	keptIngredients := make([]string, 0, n)
	keptMeasures := make([]string, 0, n)

	for i := range n {
		if ingredients[i] == "" || measures[i] == "" {
			continue
		}

		keptIngredients = append(keptIngredients, ingredients[i])
		keptMeasures = append(keptMeasures, measures[i])
	}

	return keptIngredients, keptMeasures
}
