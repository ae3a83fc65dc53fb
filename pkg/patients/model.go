package patients

import (
	"time"

	"gorm.io/datatypes"
)

// Record is a stored patient profile. It mirrors the intake form vocabulary
// plus the demographic and contact data captured at registration. Address and
// EmergencyContact are free-form JSON documents; the suggestion path flattens
// them into top-level keys.
type Record struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"uniqueIndex" json:"user_id"`

	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Race   string `json:"race"`

	Diag1 string `gorm:"column:diag_1" json:"diag_1"`
	Diag2 string `gorm:"column:diag_2" json:"diag_2"`
	Diag3 string `gorm:"column:diag_3" json:"diag_3"`

	MaxGluSerum string `gorm:"column:max_glu_serum" json:"max_glu_serum"`
	A1CResult   string `gorm:"column:a1c_result" json:"A1C_result"`
	Insulin     string `json:"insulin"`
	Metformin   string `json:"metformin"`
	DiabetesMed string `gorm:"column:diabetes_med" json:"diabetesMed"`

	TimeInHospital   int `gorm:"column:time_in_hospital" json:"time_in_hospital"`
	NumLabProcedures int `gorm:"column:num_lab_procedures" json:"num_lab_procedures"`
	NumProcedures    int `gorm:"column:num_procedures" json:"num_procedures"`
	NumMedications   int `gorm:"column:num_medications" json:"num_medications"`
	NumberOutpatient int `gorm:"column:number_outpatient" json:"number_outpatient"`
	NumberEmergency  int `gorm:"column:number_emergency" json:"number_emergency"`
	NumberInpatient  int `gorm:"column:number_inpatient" json:"number_inpatient"`
	NumberDiagnoses  int `gorm:"column:number_diagnoses" json:"number_diagnoses"`

	Address          datatypes.JSONMap `json:"address,omitempty"`
	EmergencyContact datatypes.JSONMap `gorm:"column:emergency_contact" json:"emergencyContact,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "patients"
}
