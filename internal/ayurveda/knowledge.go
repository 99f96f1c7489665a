package ayurveda

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/foods.yaml
var defaultFoodData []byte

// Slot names a meal period. Plans use Breakfast, Lunch and Dinner; Snack only appears in logs.
type Slot string

const (
	SlotBreakfast Slot = "Breakfast"
	SlotLunch     Slot = "Lunch"
	SlotDinner    Slot = "Dinner"
	SlotSnack     Slot = "Snack"
)

// PlanSlots is the fixed order in which a day's plan is built and shown.
var PlanSlots = []Slot{SlotBreakfast, SlotLunch, SlotDinner}

// LogSlots are the slots a meal can be logged under.
var LogSlots = []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// ParseSlot resolves a user supplied slot label. Morning/midday/evening are accepted as aliases.
func ParseSlot(raw string) (Slot, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "breakfast", "morning":
		return SlotBreakfast, true
	case "lunch", "midday":
		return SlotLunch, true
	case "dinner", "evening":
		return SlotDinner, true
	case "snack":
		return SlotSnack, true
	}
	return "", false
}

// Nutrients is the macro-nutrient tuple of one serving.
type Nutrients struct {
	Calories float64 `yaml:"calories" json:"calories"`
	Protein  float64 `yaml:"protein" json:"protein"`
	Carbs    float64 `yaml:"carbs" json:"carbs"`
	Fat      float64 `yaml:"fat" json:"fat"`
}

func (n Nutrients) add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

// KnowledgeBase holds the nutrition table and the meal catalog.
// It is built once at startup and never mutated afterwards, so it is safe to share.
type KnowledgeBase struct {
	foods   map[string]Nutrients
	order   []string
	catalog map[Slot][]string
}

type foodRecord struct {
	Name      string `yaml:"name"`
	Nutrients `yaml:",inline"`
}

type knowledgeDocument struct {
	Nutrition []foodRecord `yaml:"nutrition"`
	Catalog   struct {
		Breakfast []string `yaml:"breakfast"`
		Lunch     []string `yaml:"lunch"`
		Dinner    []string `yaml:"dinner"`
	} `yaml:"catalog"`
}

// DefaultKnowledge parses the embedded food data.
func DefaultKnowledge() (*KnowledgeBase, error) {
	return ParseKnowledge(defaultFoodData)
}

// LoadKnowledge reads the food data file at path, falling back to the embedded data when path is blank.
func LoadKnowledge(path string) (*KnowledgeBase, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultKnowledge()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read food data: %w", err)
	}
	return ParseKnowledge(raw)
}

// ParseKnowledge decodes and validates a YAML food document.
func ParseKnowledge(raw []byte) (*KnowledgeBase, error) {
	var doc knowledgeDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode food data: %w", err)
	}

	kb := &KnowledgeBase{
		foods:   make(map[string]Nutrients, len(doc.Nutrition)),
		order:   make([]string, 0, len(doc.Nutrition)),
		catalog: make(map[Slot][]string, len(PlanSlots)),
	}

	for _, record := range doc.Nutrition {
		name := strings.TrimSpace(record.Name)
		if name == "" {
			return nil, errors.New("food data: nutrition entry without a name")
		}
		if _, exists := kb.foods[name]; exists {
			return nil, fmt.Errorf("food data: duplicate nutrition entry %q", name)
		}
		n := record.Nutrients
		if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 {
			return nil, fmt.Errorf("food data: negative nutrient value for %q", name)
		}
		kb.foods[name] = n
		kb.order = append(kb.order, name)
	}

	catalogs := map[Slot][]string{
		SlotBreakfast: doc.Catalog.Breakfast,
		SlotLunch:     doc.Catalog.Lunch,
		SlotDinner:    doc.Catalog.Dinner,
	}
	for _, slot := range PlanSlots {
		items := make([]string, 0, len(catalogs[slot]))
		for _, item := range catalogs[slot] {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("food data: %s catalog is empty", strings.ToLower(string(slot)))
		}
		kb.catalog[slot] = items
	}

	return kb, nil
}

// Lookup returns the nutrients of a food by its exact name.
func (kb *KnowledgeBase) Lookup(name string) (Nutrients, bool) {
	n, ok := kb.foods[name]
	return n, ok
}

// Known reports whether name is present in the nutrition table.
func (kb *KnowledgeBase) Known(name string) bool {
	_, ok := kb.foods[name]
	return ok
}

// Foods lists nutrition table names in file order.
func (kb *KnowledgeBase) Foods() []string {
	return append([]string(nil), kb.order...)
}

// Catalog returns a copy of the candidate list for slot.
func (kb *KnowledgeBase) Catalog(slot Slot) []string {
	return append([]string(nil), kb.catalog[slot]...)
}
