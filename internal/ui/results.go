package ui

import (
	"bytes"
	"encoding/json"
)

// Results is the roadmap view shown after a successful generation.
type Results struct {
	Roadmap json.RawMessage
	Demo    bool
}

// PhaseSummary is the part of a roadmap phase shown above the raw JSON.
type PhaseSummary struct {
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Summary picks the well-known fields out of a roadmap. Payloads of any
// other shape give an empty summary.
type Summary struct {
	ProjectName       string         `json:"project_name"`
	EstimatedTimeline string         `json:"estimated_timeline"`
	Phases            []PhaseSummary `json:"phases"`
	SuccessMetrics    []string       `json:"success_metrics"`
}

func (s Summary) Empty() bool {
	return s.ProjectName == "" && s.EstimatedTimeline == "" && len(s.Phases) == 0 && len(s.SuccessMetrics) == 0
}

func (r Results) Summary() Summary {
	var summary Summary
	if err := json.Unmarshal(r.Roadmap, &summary); err != nil {
		return Summary{}
	}

	return summary
}

// Pretty is the roadmap indented by two spaces, or the raw text if it is not JSON.
func (r Results) Pretty() string {
	var out bytes.Buffer
	if err := json.Indent(&out, r.Roadmap, "", "  "); err != nil {
		return string(r.Roadmap)
	}

	return out.String()
}

func (r Results) BackButton() Button {
	return Button{Label: "← Back to Generator", Variant: ButtonNexusGhost, Size: ButtonMD, Href: "/#generator"}
}

func (r Results) Card() Card {
	return Card{Variant: CardElevated, Class: "results-card"}
}
