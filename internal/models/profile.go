package models

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Label returns the Korean display name used inside prompts.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "남성"
	case GenderFemale:
		return "여성"
	default:
		return string(g)
	}
}

type SkinTone string

const (
	SkinToneSpringWarm SkinTone = "spring_warm"
	SkinToneSummerCool SkinTone = "summer_cool"
	SkinToneAutumnWarm SkinTone = "autumn_warm"
	SkinToneWinterCool SkinTone = "winter_cool"
)

var skinToneLabels = map[SkinTone]string{
	SkinToneSpringWarm: "봄 웜톤",
	SkinToneSummerCool: "여름 쿨톤",
	SkinToneAutumnWarm: "가을 웜톤",
	SkinToneWinterCool: "겨울 쿨톤",
}

func (s SkinTone) Valid() bool {
	_, ok := skinToneLabels[s]
	return ok
}

// Label returns the personal color label as it appears in diagnoses.
func (s SkinTone) Label() string {
	if label, ok := skinToneLabels[s]; ok {
		return label
	}
	return string(s)
}

// SkinToneFromLabel matches a diagnosis label exactly.
func SkinToneFromLabel(label string) (SkinTone, bool) {
	for tone, l := range skinToneLabels {
		if l == label {
			return tone, true
		}
	}
	return "", false
}

const (
	MinHeightCM = 100
	MaxHeightCM = 250
	MinWeightKG = 30
	MaxWeightKG = 200
)

type UserProfile struct {
	Gender          Gender   `json:"gender"`
	HeightCM        float64  `json:"height_cm"`
	WeightKG        float64  `json:"weight_kg"`
	SkinTone        SkinTone `json:"skin_tone"`
	PreferredStyles []string `json:"preferred_styles"`
}
