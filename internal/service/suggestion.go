package service

// Suggestion is the canned response of the recommendation endpoint.
type Suggestion struct {
	Message          string   `json:"message"`
	RecommendedItems []string `json:"recommended_items"`
}

// SuggestMeals returns a fixed recommendation until a trained model exists.
// TODO: replace with a model trained on meal logs once enough history is collected.
func SuggestMeals() Suggestion {
	return Suggestion{
		Message:          "Suggestion service placeholder: personalised items will be learned from meal logs.",
		RecommendedItems: []string{"Khichdi", "Cucumber salad", "Ginger tea"},
	}
}
