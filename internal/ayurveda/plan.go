package ayurveda

import "strings"

// FoodKhichdi is the easy-to-digest staple forced into plans for weak digestion or toxin build-up.
const FoodKhichdi = "Khichdi"

// PlanSlot is one meal period of a generated plan.
type PlanSlot struct {
	Slot  Slot     `json:"slot"`
	Foods []string `json:"foods"`
}

// Plan is a day's menu in PlanSlots order.
type Plan struct {
	Slots []PlanSlot `json:"slots"`
}

// Foods returns the planned foods for slot.
func (p Plan) Foods(slot Slot) []string {
	for _, s := range p.Slots {
		if s.Slot == slot {
			return s.Foods
		}
	}
	return nil
}

// Items flattens the plan in slot order.
func (p Plan) Items() []string {
	var items []string
	for _, s := range p.Slots {
		items = append(items, s.Foods...)
	}
	return items
}

// candidateSet lists the fixed per-constitution picks, one list per PlanSlots entry.
type candidateSet [3][]string

var constitutionCandidates = []struct {
	keyword    string
	candidates func(kb *KnowledgeBase) candidateSet
}{
	{
		keyword: "vata",
		candidates: func(*KnowledgeBase) candidateSet {
			return candidateSet{
				{"Oats porridge", "Idli", "Poha"},
				{"Khichdi", "Rice with dal", "Steamed vegetables with rice"},
				{"Moong dal khichdi", "Vegetable soup", "Curd rice"},
			}
		},
	},
	{
		keyword: "pitta",
		candidates: func(*KnowledgeBase) candidateSet {
			return candidateSet{
				{"Fruit salad", "Chia pudding", "Smoothie"},
				{"Curd rice", "Cucumber salad", "Rice with dal"},
				{"Pumpkin soup", "Light vegetable curry", "Curd with rice"},
			}
		},
	},
	{
		keyword: "kapha",
		candidates: func(kb *KnowledgeBase) candidateSet {
			lunch := []string{"Chana masala", "Khichdi"}
			if kb.Known("Grilled fish") {
				lunch = []string{"Chana masala", "Grilled fish", "Tofu stir fry"}
			}
			return candidateSet{
				{"Upma", "Masala omelette", "Poha"},
				lunch,
				{"Light vegetable curry", "Cabbage stir fry", "Pumpkin soup"},
			}
		},
	},
}

// default plan sizes taken from the head of each catalog
var defaultPlanSizes = [3]int{3, 4, 3}

// GeneratePlan builds the day's plan for a classified profile.
// Only foods present in the nutrition table are kept.
func (kb *KnowledgeBase) GeneratePlan(constitution, digestiveStrength, toxinPresence string) Plan {
	candidates := kb.candidatesFor(constitution)

	plan := Plan{Slots: make([]PlanSlot, 0, len(PlanSlots))}
	for i, slot := range PlanSlots {
		foods := make([]string, 0, len(candidates[i]))
		for _, name := range candidates[i] {
			if kb.Known(name) {
				foods = append(foods, name)
			}
		}
		plan.Slots = append(plan.Slots, PlanSlot{Slot: slot, Foods: foods})
	}

	if (digestiveStrength == DigestionWeak || toxinPresence == ToxinPresent) && kb.Known(FoodKhichdi) {
		for i := range plan.Slots {
			if len(plan.Slots[i].Foods) > 0 {
				plan.Slots[i].Foods[0] = FoodKhichdi
				break
			}
		}
	}

	return plan
}

// GeneratePlanFor is GeneratePlan for a stored profile.
func (kb *KnowledgeBase) GeneratePlanFor(p Profile) Plan {
	return kb.GeneratePlan(p.Constitution, p.DigestiveStrength, p.ToxinPresence)
}

func (kb *KnowledgeBase) candidatesFor(constitution string) candidateSet {
	lowered := strings.ToLower(constitution)
	if lowered != "" && lowered != strings.ToLower(ConstitutionBalanced) {
		for _, entry := range constitutionCandidates {
			if strings.Contains(lowered, entry.keyword) {
				return entry.candidates(kb)
			}
		}
	}

	var set candidateSet
	for i, slot := range PlanSlots {
		catalog := kb.catalog[slot]
		size := min(defaultPlanSizes[i], len(catalog))
		set[i] = append([]string(nil), catalog[:size]...)
	}
	return set
}
