package risk

import (
	"reflect"
	"testing"

	"github.com/chronicare-ai/platform/pkg/terminology"
)

func TestRecommendNegativeLabelIgnoresCategories(t *testing.T) {
	without := Recommend(0, nil)
	with := Recommend(0, []string{terminology.CategoryDiabetes, terminology.CategoryCOPD})

	if len(without) == 0 {
		t.Fatal("negative label must never produce an empty list")
	}
	if !reflect.DeepEqual(without, with) {
		t.Fatalf("negative-label output must be category-independent: %v vs %v", without, with)
	}
}

func TestRecommendPositiveLabelOrdering(t *testing.T) {
	got := Recommend(1, []string{terminology.CategoryHypertension, terminology.CategoryDiabetes})

	want := []string{
		"Schedule regular follow-up appointments",
		"Monitor vital signs closely",
		"Monitor blood glucose levels daily",
		"Follow diabetic diet plan",
		"Consider insulin therapy adjustment",
		"Monitor blood pressure at home",
		"Follow low-sodium diet plan",
		"Review antihypertensive medication adherence",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRecommendPositiveLabelNoCategories(t *testing.T) {
	got := Recommend(1, nil)
	if len(got) != 2 {
		t.Fatalf("expected only the base actions, got %v", got)
	}
}

func TestRecommendSharedBlocksNotDeduplicated(t *testing.T) {
	got := Recommend(1, []string{terminology.CategoryHeartDisease, terminology.CategoryHeartFailure})

	// base pair plus the cardiac block once per matched category
	if len(got) != 2+3+3 {
		t.Fatalf("expected 8 actions, got %d: %v", len(got), got)
	}
	if got[2] != got[5] {
		t.Fatalf("expected both cardiac blocks to repeat the same actions, got %v", got)
	}
}

func TestRecommendEveryCategoryHasBlock(t *testing.T) {
	for _, category := range categoryOrder {
		got := Recommend(1, []string{category})
		if len(got) != 5 {
			t.Fatalf("category %s: expected base pair plus a 3-item block, got %v", category, got)
		}
	}
}
