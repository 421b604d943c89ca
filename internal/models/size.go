package models

type SizeEstimate struct {
	TopSize    string  `json:"top_size"`
	BottomSize string  `json:"bottom_size"`
	BMI        float64 `json:"bmi"`
}
