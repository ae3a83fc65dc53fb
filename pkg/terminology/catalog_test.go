package terminology

import (
	"reflect"
	"testing"
)

func TestCategoriesFromICD10Codes(t *testing.T) {
	cat := DefaultCatalog()

	got := cat.Categories("E11.9", "I10", "")
	want := []string{CategoryDiabetes, CategoryHypertension}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCategoriesLegacyCodes(t *testing.T) {
	cat := DefaultCatalog()

	got := cat.Categories("250.01", "428", "585.6")
	want := []string{CategoryDiabetes, CategoryHeartFailure, CategoryKidneyFailure}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCategoriesOrderIndependent(t *testing.T) {
	cat := DefaultCatalog()

	a := cat.Categories("E11.9", "I10", "N18.3")
	b := cat.Categories("N18.3", "E11.9", "I10")
	c := cat.Categories("I10", "N18.3", "E11.9")
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(b, c) {
		t.Fatalf("permuted inputs disagree: %v %v %v", a, b, c)
	}
}

func TestCategoriesDuplicatesCollapse(t *testing.T) {
	cat := DefaultCatalog()

	got := cat.Categories("E11.9", "E11.65", "250")
	if !reflect.DeepEqual(got, []string{CategoryDiabetes}) {
		t.Fatalf("expected single Diabetes entry, got %v", got)
	}
}

func TestCategoriesNullMarkersAndUnmapped(t *testing.T) {
	cat := DefaultCatalog()

	for _, codes := range [][]string{
		{"", "None", "nan"},
		{"null", "Z99.9", "X00"},
		{},
	} {
		got := cat.Categories(codes...)
		if got == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(got) != 0 {
			t.Fatalf("expected no categories for %v, got %v", codes, got)
		}
	}
}
