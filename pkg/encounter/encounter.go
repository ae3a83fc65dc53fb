package encounter

import "fmt"

// Canonical field names for a patient encounter. These match the intake form
// vocabulary and the columns the trained classifier was fitted on.
const (
	FieldAge              = "age"
	FieldGender           = "gender"
	FieldRace             = "race"
	FieldDiag1            = "diag_1"
	FieldDiag2            = "diag_2"
	FieldDiag3            = "diag_3"
	FieldMaxGluSerum      = "max_glu_serum"
	FieldA1CResult        = "A1C_result"
	FieldInsulin          = "insulin"
	FieldMetformin        = "metformin"
	FieldDiabetesMed      = "diabetesMed"
	FieldTimeInHospital   = "time_in_hospital"
	FieldNumLabProcedures = "num_lab_procedures"
	FieldNumProcedures    = "num_procedures"
	FieldNumMedications   = "num_medications"
	FieldNumberOutpatient = "number_outpatient"
	FieldNumberEmergency  = "number_emergency"
	FieldNumberInpatient  = "number_inpatient"
	FieldNumberDiagnoses  = "number_diagnoses"
)

// aliasFields maps legacy intake field names to their canonical form. When
// both the alias and the canonical key are present, the canonical key wins.
var aliasFields = map[string]string{
	"A1Cresult": FieldA1CResult,
}

// declaredOrder is the full column order used when the classifier does not
// expose its own expected-feature list.
var declaredOrder = []string{
	FieldAge,
	FieldGender,
	FieldRace,
	FieldDiag1,
	FieldDiag2,
	FieldDiag3,
	FieldMaxGluSerum,
	FieldA1CResult,
	FieldInsulin,
	FieldMetformin,
	FieldDiabetesMed,
	FieldTimeInHospital,
	FieldNumLabProcedures,
	FieldNumProcedures,
	FieldNumMedications,
	FieldNumberOutpatient,
	FieldNumberEmergency,
	FieldNumberInpatient,
	FieldNumberDiagnoses,
}

// Encounter is a normalized, model-compatible patient encounter. All fields
// are request-scoped values; nothing here outlives the request.
type Encounter struct {
	Age    int
	Gender string
	Race   string

	Diag1 string
	Diag2 string
	Diag3 string

	MaxGluSerum string
	A1CResult   string
	Insulin     string
	Metformin   string
	DiabetesMed int

	TimeInHospital   int
	NumLabProcedures int
	NumProcedures    int
	NumMedications   int
	NumberOutpatient int
	NumberEmergency  int
	NumberInpatient  int
	NumberDiagnoses  int
}

// Ordinal code tables for categorical fields. The trained pipeline encoded
// these columns ordinally; the same codes are reproduced here so the feature
// vector lines up with the model weights.
var (
	gluCodes = map[string]float64{"None": 0, "Norm": 1, ">200": 2, ">300": 3}
	a1cCodes = map[string]float64{"None": 0, "Norm": 1, ">7": 2, ">8": 3}
	medCodes = map[string]float64{"No": 0, "Down": 1, "Steady": 2, "Up": 3}

	genderCodes = map[string]float64{"Male": 0, "Female": 1, "Other": 2}
	raceCodes   = map[string]float64{
		"White":            0,
		"Caucasian":        0,
		"African American": 1,
		"Asian":            2,
		"Hispanic":         3,
		"Other":            4,
	}
)

// FeatureVector is the encounter projected onto an ordered column list, with
// categorical fields ordinal-encoded for the classifier.
type FeatureVector struct {
	Columns []string
	Values  []float64
}

// Feature returns the encoded value for a canonical column name. The second
// return reports whether the column belongs to the encounter vocabulary.
func (e *Encounter) Feature(name string) (float64, bool) {
	switch name {
	case FieldAge:
		return float64(e.Age), true
	case FieldGender:
		return genderCodes[e.Gender], true
	case FieldRace:
		return raceCodes[e.Race], true
	case FieldDiag1:
		return diagCode(e.Diag1), true
	case FieldDiag2:
		return diagCode(e.Diag2), true
	case FieldDiag3:
		return diagCode(e.Diag3), true
	case FieldMaxGluSerum:
		return gluCodes[e.MaxGluSerum], true
	case FieldA1CResult:
		return a1cCodes[e.A1CResult], true
	case FieldInsulin:
		return medCodes[e.Insulin], true
	case FieldMetformin:
		return medCodes[e.Metformin], true
	case FieldDiabetesMed:
		return float64(e.DiabetesMed), true
	case FieldTimeInHospital:
		return float64(e.TimeInHospital), true
	case FieldNumLabProcedures:
		return float64(e.NumLabProcedures), true
	case FieldNumProcedures:
		return float64(e.NumProcedures), true
	case FieldNumMedications:
		return float64(e.NumMedications), true
	case FieldNumberOutpatient:
		return float64(e.NumberOutpatient), true
	case FieldNumberEmergency:
		return float64(e.NumberEmergency), true
	case FieldNumberInpatient:
		return float64(e.NumberInpatient), true
	case FieldNumberDiagnoses:
		return float64(e.NumberDiagnoses), true
	}
	return 0, false
}

// diagCode encodes a diagnosis slot as presence: the model only consumes
// whether a slot carries a real code, category derivation happens elsewhere.
func diagCode(code string) float64 {
	if isNullMarker(code) {
		return 0
	}
	return 1
}

// Fields returns the encounter as a canonical field map, the shape the
// suggestion path and the raw intake form share.
func (e *Encounter) Fields() map[string]interface{} {
	return map[string]interface{}{
		FieldAge:              e.Age,
		FieldGender:           e.Gender,
		FieldRace:             e.Race,
		FieldDiag1:            e.Diag1,
		FieldDiag2:            e.Diag2,
		FieldDiag3:            e.Diag3,
		FieldMaxGluSerum:      e.MaxGluSerum,
		FieldA1CResult:        e.A1CResult,
		FieldInsulin:          e.Insulin,
		FieldMetformin:        e.Metformin,
		FieldDiabetesMed:      e.DiabetesMed,
		FieldTimeInHospital:   e.TimeInHospital,
		FieldNumLabProcedures: e.NumLabProcedures,
		FieldNumProcedures:    e.NumProcedures,
		FieldNumMedications:   e.NumMedications,
		FieldNumberOutpatient: e.NumberOutpatient,
		FieldNumberEmergency:  e.NumberEmergency,
		FieldNumberInpatient:  e.NumberInpatient,
		FieldNumberDiagnoses:  e.NumberDiagnoses,
	}
}

// AlignFeatures projects the encounter onto the classifier's expected column
// order. A nil or empty column list keeps the declared order unreordered.
// An expected column outside the encounter vocabulary is an error, not a
// coercion: it means the form schema and the model schema have diverged.
func AlignFeatures(e *Encounter, expected []string) (FeatureVector, error) {
	columns := expected
	if len(columns) == 0 {
		columns = declaredOrder
	}

	vec := FeatureVector{
		Columns: make([]string, len(columns)),
		Values:  make([]float64, len(columns)),
	}
	for i, col := range columns {
		value, ok := e.Feature(col)
		if !ok {
			return FeatureVector{}, fmt.Errorf("model expects column %q not present in encounter schema", col)
		}
		vec.Columns[i] = col
		vec.Values[i] = value
	}
	return vec, nil
}
