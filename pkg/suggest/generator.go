package suggest

import (
	"strings"

	"github.com/chronicare-ai/platform/pkg/patients"
)

// SuggestedFields is a full set of proposed intake-form values. Keys follow
// the form vocabulary, which still uses the legacy "A1Cresult" spelling; the
// normalizer renames it on the way back in.
type SuggestedFields map[string]interface{}

// Flattened sub-object keys, always present with empty-string defaults.
var addressKeys = []string{"street", "city", "state", "zip"}
var contactKeys = []string{"name", "phone", "relationship"}

// FromRecord builds suggestions from a stored patient record. Stored values
// take precedence; anything missing falls back to the same defaults the
// registration form declares.
func FromRecord(rec *patients.Record) SuggestedFields {
	fields := SuggestedFields{
		"age":                rec.Age,
		"gender":             stringOr(rec.Gender, "Other"),
		"race":               stringOr(rec.Race, "Other"),
		"diag_1":             stringOr(rec.Diag1, "None"),
		"diag_2":             stringOr(rec.Diag2, "None"),
		"diag_3":             stringOr(rec.Diag3, "None"),
		"max_glu_serum":      stringOr(rec.MaxGluSerum, "None"),
		"A1Cresult":          stringOr(rec.A1CResult, "None"),
		"insulin":            stringOr(rec.Insulin, "No"),
		"metformin":          stringOr(rec.Metformin, "No"),
		"diabetesMed":        stringOr(rec.DiabetesMed, "No"),
		"time_in_hospital":   rec.TimeInHospital,
		"num_lab_procedures": rec.NumLabProcedures,
		"num_procedures":     rec.NumProcedures,
		"num_medications":    rec.NumMedications,
		"number_outpatient":  rec.NumberOutpatient,
		"number_emergency":   rec.NumberEmergency,
		"number_inpatient":   rec.NumberInpatient,
		"number_diagnoses":   rec.NumberDiagnoses,
	}

	for _, key := range addressKeys {
		fields["address_"+key] = nestedString(rec.Address, key)
	}
	for _, key := range contactKeys {
		fields["emergency_contact_"+key] = nestedString(rec.EmergencyContact, key)
	}

	return fields
}

// FromProfile synthesizes a plausible encounter from age, gender and race
// alone. The rules are a fixed table keyed on age band: utilization counters,
// diagnosis severity and medication escalation all rise with age. Everything
// here is deterministic; the classifier is never consulted.
func FromProfile(age int, gender, race string) SuggestedFields {
	fields := SuggestedFields{
		"age":    age,
		"gender": stringOr(gender, "Other"),
		"race":   stringOr(race, "Other"),
	}

	switch {
	case age < 40:
		fields["diag_1"] = "E11.9"
		fields["diag_2"] = "None"
		fields["diag_3"] = "None"
		fields["max_glu_serum"] = "Norm"
		fields["A1Cresult"] = "Norm"
		fields["insulin"] = "No"
		fields["metformin"] = "Steady"
		fields["diabetesMed"] = "Yes"
		fields["time_in_hospital"] = 3
		fields["num_lab_procedures"] = 35
		fields["num_procedures"] = 1
		fields["num_medications"] = 8
		fields["number_outpatient"] = 0
		fields["number_emergency"] = 0
		fields["number_inpatient"] = 0
		fields["number_diagnoses"] = 2
	case age < 65:
		fields["diag_1"] = "E11.9"
		fields["diag_2"] = "I10"
		fields["diag_3"] = "None"
		fields["max_glu_serum"] = ">200"
		fields["A1Cresult"] = ">7"
		fields["insulin"] = "Steady"
		fields["metformin"] = "Up"
		fields["diabetesMed"] = "Yes"
		fields["time_in_hospital"] = 7
		fields["num_lab_procedures"] = 60
		fields["num_procedures"] = 3
		fields["num_medications"] = 12
		fields["number_outpatient"] = 1
		fields["number_emergency"] = 0
		fields["number_inpatient"] = 1
		fields["number_diagnoses"] = 4
	default:
		fields["diag_1"] = "E11.9"
		fields["diag_2"] = "I10"
		fields["diag_3"] = "N18.3"
		fields["max_glu_serum"] = ">300"
		fields["A1Cresult"] = ">8"
		fields["insulin"] = "Up"
		fields["metformin"] = "Steady"
		fields["diabetesMed"] = "Yes"
		fields["time_in_hospital"] = 10
		fields["num_lab_procedures"] = 75
		fields["num_procedures"] = 4
		fields["num_medications"] = 16
		fields["number_outpatient"] = 2
		fields["number_emergency"] = 1
		fields["number_inpatient"] = 2
		fields["number_diagnoses"] = 6
	}

	// Hypertension prevalence adjustment: flag the second diagnosis slot for
	// demographics with elevated baseline risk even in the youngest band.
	if strings.EqualFold(race, "African American") && fields["diag_2"] == "None" {
		fields["diag_2"] = "I10"
	}

	for _, key := range addressKeys {
		fields["address_"+key] = ""
	}
	for _, key := range contactKeys {
		fields["emergency_contact_"+key] = ""
	}

	return fields
}

func stringOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func nestedString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}
