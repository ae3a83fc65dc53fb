package risk

import "github.com/chronicare-ai/platform/pkg/terminology"

// Base actions for any positive prediction, emitted before the
// category-specific blocks.
var baseActions = []string{
	"Schedule regular follow-up appointments",
	"Monitor vital signs closely",
}

// Actions for a negative prediction; categories are ignored on this path.
var maintainActions = []string{
	"Maintain healthy lifestyle",
	"Regular preventive check-ups",
	"Continue current medication regimen",
}

// categoryOrder fixes the emission order of the category blocks. Output order
// is part of the contract: the dashboard renders recommendations as given.
var categoryOrder = []string{
	terminology.CategoryDiabetes,
	terminology.CategoryHeartDisease,
	terminology.CategoryHeartFailure,
	terminology.CategoryKidneyDisease,
	terminology.CategoryKidneyFailure,
	terminology.CategoryCholesterol,
	terminology.CategoryCOPD,
	terminology.CategoryHypertension,
}

var categoryActions = map[string][]string{
	terminology.CategoryDiabetes: {
		"Monitor blood glucose levels daily",
		"Follow diabetic diet plan",
		"Consider insulin therapy adjustment",
	},
	terminology.CategoryHeartDisease: {
		"Monitor blood pressure regularly",
		"Limit sodium intake",
		"Consider cardiology consultation",
	},
	// Heart failure shares the cardiac action block.
	terminology.CategoryHeartFailure: {
		"Monitor blood pressure regularly",
		"Limit sodium intake",
		"Consider cardiology consultation",
	},
	terminology.CategoryKidneyDisease: {
		"Monitor kidney function tests",
		"Adjust medication dosages",
		"Consider nephrology referral",
	},
	terminology.CategoryKidneyFailure: {
		"Monitor kidney function tests",
		"Adjust medication dosages",
		"Consider nephrology referral",
	},
	terminology.CategoryCholesterol: {
		"Follow low-cholesterol diet",
		"Consider statin therapy",
		"Regular lipid panel monitoring",
	},
	terminology.CategoryCOPD: {
		"Schedule pulmonary function testing",
		"Review inhaler technique and adherence",
		"Offer smoking cessation support",
	},
	terminology.CategoryHypertension: {
		"Monitor blood pressure at home",
		"Follow low-sodium diet plan",
		"Review antihypertensive medication adherence",
	},
}

// Recommend produces the ordered care-action list for a prediction. A
// positive label emits the base pair followed by one fixed block per matched
// category, in categoryOrder; duplicate actions across categories are kept.
// A negative label always yields the maintain-health block.
func Recommend(label int, categories []string) []string {
	if label != 1 {
		out := make([]string, len(maintainActions))
		copy(out, maintainActions)
		return out
	}

	matched := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		matched[category] = struct{}{}
	}

	out := make([]string, 0, len(baseActions)+3*len(matched))
	out = append(out, baseActions...)
	for _, category := range categoryOrder {
		if _, ok := matched[category]; !ok {
			continue
		}
		out = append(out, categoryActions[category]...)
	}
	return out
}
