package services

import (
	"math"

	"wearwise/style-advisor/internal/models"
)

type sizeBand struct {
	below float64
	label string
}

var bottomSizeBands = []sizeBand{
	{50, "25-26 inch"},
	{58, "27-28 inch"},
	{65, "29-30 inch"},
	{75, "31-33 inch"},
	{85, "34-35 inch"},
	{math.Inf(1), "36 inch 이상"},
}

// BMI returns weight over height squared, height given in centimeters.
func BMI(heightCM, weightKG float64) float64 {
	h := heightCM / 100
	return weightKG / (h * h)
}

// EstimateSize maps body measurements onto fixed size labels. Every band is
// inclusive on its lower bound.
func EstimateSize(heightCM, weightKG float64, gender models.Gender) models.SizeEstimate {
	bmi := BMI(heightCM, weightKG)

	return models.SizeEstimate{
		TopSize:    topSize(heightCM, bmi, gender),
		BottomSize: bottomSize(weightKG),
		BMI:        math.Round(bmi*10) / 10,
	}
}

func topSize(heightCM, bmi float64, gender models.Gender) string {
	if gender == models.GenderFemale {
		switch {
		case heightCM < 155:
			return "XS (44)"
		case heightCM < 160:
			return "S (55)"
		case heightCM < 168:
			if bmi < 23 {
				return "M (66)"
			}
			return "L (77)"
		case heightCM < 175:
			return "L (77)"
		default:
			return "XL (88)"
		}
	}

	switch {
	case heightCM < 160:
		return "S (90)"
	case heightCM < 170:
		return "M (95)"
	case heightCM < 180:
		if bmi < 25 {
			return "L (100)"
		}
		return "XL (105)"
	case heightCM < 185:
		return "XL (105)"
	default:
		return "XXL (110)"
	}
}

func bottomSize(weightKG float64) string {
	for _, band := range bottomSizeBands {
		if weightKG < band.below {
			return band.label
		}
	}
	return bottomSizeBands[len(bottomSizeBands)-1].label
}
