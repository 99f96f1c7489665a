package ayurveda

import _ "embed"

//go:embed data/guide.md
var guideMarkdown string

// Guide returns the Markdown explanation of the profile labels shown to patients.
func Guide() string {
	return guideMarkdown
}
