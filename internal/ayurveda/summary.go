package ayurveda

import (
	"math"
	"time"
)

// Summary aggregates nutrients over a list of foods.
type Summary struct {
	Total Nutrients            `json:"total"`
	Items map[string]Nutrients `json:"details"`
}

// Summarize totals the known foods in names. Unknown names contribute nothing.
// Totals are rounded to one decimal after summing.
func (kb *KnowledgeBase) Summarize(names []string) Summary {
	summary := Summary{Items: make(map[string]Nutrients)}
	for _, name := range names {
		n, ok := kb.foods[name]
		if !ok {
			continue
		}
		summary.Items[name] = n
		summary.Total = summary.Total.add(n)
	}
	summary.Total = roundNutrients(summary.Total)
	return summary
}

// RoundTenth rounds v to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundNutrients(n Nutrients) Nutrients {
	return Nutrients{
		Calories: RoundTenth(n.Calories),
		Protein:  RoundTenth(n.Protein),
		Carbs:    RoundTenth(n.Carbs),
		Fat:      RoundTenth(n.Fat),
	}
}

// SeasonalRecommendations suggests foods for the season containing month.
func SeasonalRecommendations(month time.Month) []string {
	switch month {
	case time.December, time.January, time.February:
		return []string{"Ginger tea", "Warm soups", "Khichdi"}
	case time.March, time.April, time.May:
		return []string{"Coconut water", "Cucumber salad", "Light fruits"}
	case time.June, time.July, time.August, time.September:
		return []string{"Light soups", "Steamed veggies", "Ginger"}
	default:
		return []string{"Barley", "Warm grains", "Ghee in moderation"}
	}
}
