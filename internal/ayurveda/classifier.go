package ayurveda

import "strings"

// Element is one of the three elemental types (dosha).
type Element string

const (
	Vata  Element = "Vata"
	Pitta Element = "Pitta"
	Kapha Element = "Kapha"
)

// Elements is the fixed ordering used for tie-breaks and rule evaluation.
var Elements = []Element{Vata, Pitta, Kapha}

const (
	ConstitutionBalanced = "Balanced"

	DigestionWeak   = "weak"
	DigestionNormal = "normal"
	DigestionStrong = "strong"

	ToxinPresent = "present"
	ToxinAbsent  = "absent"
)

// Answers are the questionnaire responses. Field tags match the HTML form and JSON API.
type Answers struct {
	Sleep             string `form:"sleep" json:"sleep"`
	Skin              string `form:"skin" json:"skin"`
	Digestion         string `form:"digestion" json:"digestion"`
	Appetite          string `form:"appetite" json:"appetite"`
	BodyBuild         string `form:"body_build" json:"body_build"`
	TempSensitivity   string `form:"temp_sensitivity" json:"temp_sensitivity"`
	Mood              string `form:"mood" json:"mood"`
	DigestiveOverride string `form:"agni" json:"agni"`
	ToxinSigns        string `form:"ama_signs" json:"ama_signs"`
}

// Profile is the classifier output stored on the patient.
type Profile struct {
	Constitution      string `json:"constitution"`
	DigestiveStrength string `json:"digestive_strength"`
	ToxinPresence     string `json:"toxin_presence"`
}

type trait struct {
	answer func(Answers) string
	tokens map[string]Element
}

var traits = []trait{
	{
		answer: func(a Answers) string { return a.Sleep },
		tokens: map[string]Element{"light": Vata, "disturbed": Vata, "deep": Kapha, "balanced": Pitta},
	},
	{
		answer: func(a Answers) string { return a.Skin },
		tokens: map[string]Element{"dry": Vata, "oily": Pitta, "moist": Kapha, "normal": Pitta},
	},
	{
		answer: func(a Answers) string { return a.Digestion },
		tokens: map[string]Element{"irregular": Vata, "strong": Pitta, "slow": Kapha, "normal": Pitta},
	},
	{
		answer: func(a Answers) string { return a.Appetite },
		tokens: map[string]Element{"variable": Vata, "strong": Pitta, "low": Kapha},
	},
	{
		answer: func(a Answers) string { return a.BodyBuild },
		tokens: map[string]Element{"thin": Vata, "medium": Pitta, "heavy": Kapha},
	},
	{
		answer: func(a Answers) string { return a.TempSensitivity },
		tokens: map[string]Element{"cold": Vata, "hot": Pitta, "cool": Kapha},
	},
	{
		answer: func(a Answers) string { return a.Mood },
		tokens: map[string]Element{"anxious": Vata, "irritable": Pitta, "calm": Kapha},
	},
}

// Classify scores the answers and derives the three profile labels.
// Unknown or blank answers are ignored; it never fails.
func Classify(a Answers) Profile {
	return Profile{
		Constitution:      classifyConstitution(a),
		DigestiveStrength: classifyDigestion(a),
		ToxinPresence:     classifyToxins(a),
	}
}

func classifyConstitution(a Answers) string {
	scores := make(map[Element]int, len(Elements))
	for _, t := range traits {
		value := normalizeToken(t.answer(a))
		if value == "" {
			continue
		}
		if element, ok := t.tokens[value]; ok {
			scores[element]++
		}
	}

	best := 0
	for _, element := range Elements {
		if scores[element] > best {
			best = scores[element]
		}
	}
	if best == 0 {
		return ConstitutionBalanced
	}

	leaders := make([]string, 0, len(Elements))
	for _, element := range Elements {
		if scores[element] == best {
			leaders = append(leaders, string(element))
		}
	}
	return strings.Join(leaders, "-")
}

func classifyDigestion(a Answers) string {
	if strings.TrimSpace(a.DigestiveOverride) != "" {
		return a.DigestiveOverride
	}

	digestion := normalizeToken(a.Digestion)
	appetite := normalizeToken(a.Appetite)
	switch {
	case digestion == "weak" || digestion == "slow" || appetite == "low":
		return DigestionWeak
	case digestion == "strong":
		return DigestionStrong
	default:
		return DigestionNormal
	}
}

func classifyToxins(a Answers) string {
	if strings.TrimSpace(a.ToxinSigns) != "" {
		return ToxinPresent
	}
	return ToxinAbsent
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
