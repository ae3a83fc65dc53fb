package encounter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Normalize coerces a raw intake payload into a typed Encounter. It never
// fails on malformed field values: numeric parse failures fall back to zero
// and unknown keys are ignored. Only a nil payload is an error.
func Normalize(raw map[string]interface{}) (*Encounter, error) {
	if raw == nil {
		return nil, errors.New("nil payload")
	}

	fields := applyAliases(raw)

	enc := &Encounter{
		Gender:      getString(fields[FieldGender]),
		Race:        getString(fields[FieldRace]),
		Diag1:       getString(fields[FieldDiag1]),
		Diag2:       getString(fields[FieldDiag2]),
		Diag3:       getString(fields[FieldDiag3]),
		MaxGluSerum: getString(fields[FieldMaxGluSerum]),
		A1CResult:   getString(fields[FieldA1CResult]),
		Insulin:     getString(fields[FieldInsulin]),
		Metformin:   getString(fields[FieldMetformin]),
		DiabetesMed: coerceDiabetesMed(fields[FieldDiabetesMed]),
	}

	enc.Age = coerceInt(fields[FieldAge])
	enc.TimeInHospital = coerceInt(fields[FieldTimeInHospital])
	enc.NumLabProcedures = coerceInt(fields[FieldNumLabProcedures])
	enc.NumProcedures = coerceInt(fields[FieldNumProcedures])
	enc.NumMedications = coerceInt(fields[FieldNumMedications])
	enc.NumberOutpatient = coerceInt(fields[FieldNumberOutpatient])
	enc.NumberEmergency = coerceInt(fields[FieldNumberEmergency])
	enc.NumberInpatient = coerceInt(fields[FieldNumberInpatient])
	enc.NumberDiagnoses = coerceInt(fields[FieldNumberDiagnoses])

	return enc, nil
}

// applyAliases renames legacy field names to canonical ones. A canonical key
// already present in the payload always wins over its alias.
func applyAliases(raw map[string]interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		fields[key] = value
	}
	for alias, canonical := range aliasFields {
		if value, ok := fields[alias]; ok {
			if _, exists := fields[canonical]; !exists {
				fields[canonical] = value
			}
			delete(fields, alias)
		}
	}
	return fields
}

// coerceDiabetesMed maps the medication flag onto 0/1. Membership is
// case-insensitive; anything outside the truthy set, including absence,
// resolves to 0.
func coerceDiabetesMed(value interface{}) int {
	switch strings.ToLower(strings.TrimSpace(stringify(value))) {
	case "yes", "1", "true":
		return 1
	}
	return 0
}

// coerceInt parses an integer field, substituting zero on any parse failure
// and clamping negatives. Input-shape tolerance is deliberate: a malformed
// counter must not abort the whole inference.
func coerceInt(value interface{}) int {
	n, err := toInt(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n, nil
		}
		// intake forms occasionally send counters as "3.0"
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("not an integer: %q", v)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

func getString(v interface{}) string {
	return strings.TrimSpace(stringify(v))
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// nullMarkers are the values the intake form and legacy exports use for an
// empty diagnosis slot.
var nullMarkers = map[string]struct{}{
	"":     {},
	"none": {},
	"nan":  {},
	"null": {},
}

func isNullMarker(value string) bool {
	_, ok := nullMarkers[strings.ToLower(strings.TrimSpace(value))]
	return ok
}
