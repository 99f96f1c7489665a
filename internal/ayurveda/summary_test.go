package ayurveda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_UnknownOnly(t *testing.T) {
	kb := loadDefaultKnowledge(t)

	got := kb.Summarize([]string{"Oats porridge", "Chia pudding", "idli"})
	assert.Equal(t, Nutrients{}, got.Total)
	assert.Empty(t, got.Items)

	empty := kb.Summarize(nil)
	assert.Equal(t, Nutrients{}, empty.Total)
	assert.Empty(t, empty.Items)
}

func TestSummarize_SumsKnownItems(t *testing.T) {
	kb := loadDefaultKnowledge(t)

	got := kb.Summarize([]string{"Idli", "Cucumber salad", "Mystery stew", "Coconut water"})

	// 58 + 16 + 19
	assert.Equal(t, 93.0, got.Total.Calories)
	// 2 + 0.7 + 0.7
	assert.Equal(t, 3.4, got.Total.Protein)
	// 12 + 3.6 + 3.7
	assert.Equal(t, 19.3, got.Total.Carbs)
	// 0.2 + 0.1 + 0.2
	assert.Equal(t, 0.5, got.Total.Fat)

	require.Len(t, got.Items, 3)
	assert.Equal(t, Nutrients{Calories: 16, Protein: 0.7, Carbs: 3.6, Fat: 0.1}, got.Items["Cucumber salad"])
	assert.NotContains(t, got.Items, "Mystery stew")
}

func TestSummarize_CountsRepeatedItems(t *testing.T) {
	kb := loadDefaultKnowledge(t)

	got := kb.Summarize([]string{"Khichdi", "Khichdi"})
	assert.Equal(t, 560.0, got.Total.Calories)
	assert.Len(t, got.Items, 1)
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 0.3, RoundTenth(0.1+0.2))
	assert.Equal(t, 12.4, RoundTenth(12.35000001))
	assert.Equal(t, 7.0, RoundTenth(7))
}

func TestSeasonalRecommendations(t *testing.T) {
	assert.Equal(t, []string{"Ginger tea", "Warm soups", "Khichdi"}, SeasonalRecommendations(time.January))
	assert.Equal(t, []string{"Coconut water", "Cucumber salad", "Light fruits"}, SeasonalRecommendations(time.April))
	assert.Equal(t, []string{"Light soups", "Steamed veggies", "Ginger"}, SeasonalRecommendations(time.September))
	assert.Equal(t, []string{"Barley", "Warm grains", "Ghee in moderation"}, SeasonalRecommendations(time.October))
}
