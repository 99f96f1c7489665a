package ayurveda

import (
	"fmt"
	"strings"
)

// Verdict is the evaluator's decision on a single food.
type Verdict struct {
	Acceptable bool   `json:"ok"`
	Reason     string `json:"msg"`
}

type elementRule struct {
	element            Element
	favourable         []string
	favourableReason   string
	unfavourable       []string
	unfavourableReason string
}

var elementRules = []elementRule{
	{
		element:            Vata,
		favourable:         []string{"oats", "khichdi", "porridge", "warm", "ghee", "rice", "dal", "soups"},
		favourableReason:   "Good for Vata: warm, grounding foods.",
		unfavourable:       []string{"fried", "cold", "raw", "salad"},
		unfavourableReason: "Avoid raw/cold/fried foods for Vata.",
	},
	{
		element:            Pitta,
		favourable:         []string{"curd", "cucumber", "coconut", "rice", "cool", "sweet", "buttermilk"},
		favourableReason:   "Cooling for Pitta.",
		unfavourable:       []string{"spicy", "hot", "fried", "chili", "ginger"},
		unfavourableReason: "May aggravate Pitta (hot/spicy).",
	},
	{
		element:            Kapha,
		favourable:         []string{"grilled", "spicy", "light", "barley", "lentils", "salad", "ginger"},
		favourableReason:   "Light/spicy is good for Kapha.",
		unfavourable:       []string{"dairy", "oily", "heavy", "sweet", "butter", "paneer"},
		unfavourableReason: "Avoid heavy/dairy/sweet for Kapha.",
	},
}

var (
	easyToDigestKeywords = []string{"khichdi", "moong", "soup", "steamed", "rice"}
	detoxKeywords        = []string{"ginger", "warm", "steamed", "khichdi", "light", "cooked"}
)

// Evaluate decides whether food suits the profile. The first matching rule wins:
// allergy, constitution keywords (Vata, Pitta, Kapha in turn), weak digestion, toxins, default.
func Evaluate(food, constitution, digestiveStrength, toxinPresence string, allergies []string) Verdict {
	name := strings.ToLower(food)

	for _, allergen := range allergies {
		trimmed := strings.TrimSpace(allergen)
		if trimmed != "" && strings.Contains(name, strings.ToLower(trimmed)) {
			return Verdict{Acceptable: false, Reason: fmt.Sprintf("Contains allergen '%s'. Avoid.", trimmed)}
		}
	}

	lowered := strings.ToLower(constitution)
	for _, rule := range elementRules {
		if !strings.Contains(lowered, strings.ToLower(string(rule.element))) {
			continue
		}
		if containsAny(name, rule.favourable) {
			return Verdict{Acceptable: true, Reason: rule.favourableReason}
		}
		if containsAny(name, rule.unfavourable) {
			return Verdict{Acceptable: false, Reason: rule.unfavourableReason}
		}
	}

	if digestiveStrength == DigestionWeak {
		if containsAny(name, easyToDigestKeywords) {
			return Verdict{Acceptable: true, Reason: "Good for weak Agni (easy to digest)."}
		}
		return Verdict{Acceptable: false, Reason: "Prefer easy-to-digest foods for weak Agni."}
	}

	if toxinPresence == ToxinPresent {
		if containsAny(name, detoxKeywords) {
			return Verdict{Acceptable: true, Reason: "Good to help clear Ama."}
		}
		return Verdict{Acceptable: false, Reason: "Avoid heavy foods until Ama reduces."}
	}

	return Verdict{Acceptable: true, Reason: "No major contraindication found."}
}

// EvaluateFor is Evaluate for a stored profile.
func EvaluateFor(food string, p Profile, allergies []string) Verdict {
	return Evaluate(food, p.Constitution, p.DigestiveStrength, p.ToxinPresence, allergies)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
