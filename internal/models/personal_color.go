package models

// PersonalColorDiagnosis holds a nil Category when the diagnosis label did not
// match one of the four known seasons.
type PersonalColorDiagnosis struct {
	Category      *SkinTone `json:"category"`
	RawLabel      string    `json:"raw_label"`
	RationaleText string    `json:"rationale_text"`
}

func (d PersonalColorDiagnosis) Recognized() bool {
	return d.Category != nil
}
