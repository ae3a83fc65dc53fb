package suggest

import (
	"reflect"
	"testing"

	"github.com/chronicare-ai/platform/pkg/patients"
	"gorm.io/datatypes"
)

func TestFromProfileDeterministic(t *testing.T) {
	a := FromProfile(70, "Female", "White")
	b := FromProfile(70, "Female", "White")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("profile suggestions must be deterministic")
	}
}

func TestFromProfileAgeBandsEscalate(t *testing.T) {
	young := FromProfile(30, "Male", "Asian")
	middle := FromProfile(50, "Male", "Asian")
	senior := FromProfile(75, "Male", "Asian")

	for _, key := range []string{"time_in_hospital", "num_lab_procedures", "num_medications", "number_diagnoses"} {
		y := young[key].(int)
		m := middle[key].(int)
		s := senior[key].(int)
		if !(y < m && m < s) {
			t.Fatalf("%s should rise with age band: %d, %d, %d", key, y, m, s)
		}
	}

	if young["insulin"] != "No" || senior["insulin"] != "Up" {
		t.Fatalf("expected insulin escalation with age, got %v and %v", young["insulin"], senior["insulin"])
	}
	if senior["diag_3"] == "None" {
		t.Fatal("expected an additional diagnosis in the senior band")
	}
}

func TestFromProfileRaceAdjustment(t *testing.T) {
	fields := FromProfile(30, "Female", "African American")
	if fields["diag_2"] != "I10" {
		t.Fatalf("expected hypertension flag in diag_2, got %v", fields["diag_2"])
	}
}

func TestFromProfileFlattenedDefaults(t *testing.T) {
	fields := FromProfile(40, "Other", "Other")
	for _, key := range []string{"address_street", "address_city", "emergency_contact_name", "emergency_contact_phone"} {
		value, ok := fields[key]
		if !ok {
			t.Fatalf("missing flattened key %s", key)
		}
		if value != "" {
			t.Fatalf("expected empty-string default for %s, got %v", key, value)
		}
	}
}

func TestFromRecordCopiesStoredValues(t *testing.T) {
	rec := &patients.Record{
		Age:            62,
		Gender:         "Female",
		Race:           "Hispanic",
		Diag1:          "E11.9",
		Insulin:        "Steady",
		NumMedications: 9,
		Address:        datatypes.JSONMap{"street": "12 Main St", "city": "Springfield"},
	}

	fields := FromRecord(rec)
	if fields["age"] != 62 || fields["diag_1"] != "E11.9" || fields["insulin"] != "Steady" {
		t.Fatalf("stored values must pass through, got %v", fields)
	}
	if fields["num_medications"] != 9 {
		t.Fatalf("expected num_medications=9, got %v", fields["num_medications"])
	}
	if fields["address_street"] != "12 Main St" || fields["address_city"] != "Springfield" {
		t.Fatalf("expected flattened address, got %v", fields)
	}
	if fields["address_state"] != "" {
		t.Fatalf("expected empty default for missing address key, got %v", fields["address_state"])
	}
}

func TestFromRecordAppliesDeclaredDefaults(t *testing.T) {
	fields := FromRecord(&patients.Record{Age: 25})

	defaults := map[string]string{
		"diag_2":        "None",
		"max_glu_serum": "None",
		"A1Cresult":     "None",
		"insulin":       "No",
		"metformin":     "No",
		"diabetesMed":   "No",
	}
	for key, want := range defaults {
		if fields[key] != want {
			t.Fatalf("expected default %q for %s, got %v", want, key, fields[key])
		}
	}
	if fields["emergency_contact_relationship"] != "" {
		t.Fatal("expected empty default for missing emergency contact")
	}
}
