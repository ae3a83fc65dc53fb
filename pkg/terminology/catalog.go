package terminology

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Chronic disease category names produced by the catalog.
const (
	CategoryDiabetes      = "Diabetes"
	CategoryHypertension  = "Hypertension"
	CategoryHeartDisease  = "Heart Disease"
	CategoryHeartFailure  = "Heart Failure"
	CategoryKidneyDisease = "Kidney Disease"
	CategoryKidneyFailure = "Kidney Failure"
	CategoryCholesterol   = "Cholesterol"
	CategoryCOPD          = "COPD"
)

// Catalog maps diagnosis code prefixes (the part of an ICD code before the
// first ".") to chronic disease categories. The table is deployment
// configuration: deployments that still receive legacy ICD-9 exports keep the
// numeric prefixes alongside the ICD-10 ones.
type Catalog struct {
	Prefixes map[string]string `yaml:"prefixes" json:"prefixes"`
}

// Load reads a catalog from a YAML file. An empty path returns the canonical
// default table.
func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Prefixes) == 0 {
		return Catalog{}, fmt.Errorf("diagnosis catalog empty")
	}
	return cat, nil
}

// Categories derives the set of chronic disease categories implicated by the
// given diagnosis codes. Codes are truncated at the first "." before lookup;
// empty slots, null markers and unmapped prefixes contribute nothing.
// The result is deduplicated and sorted for deterministic output, and is
// never nil.
func (c Catalog) Categories(codes ...string) []string {
	seen := make(map[string]struct{})
	for _, raw := range codes {
		code := strings.TrimSpace(raw)
		if isNullCode(code) {
			continue
		}
		prefix := code
		if idx := strings.Index(code, "."); idx >= 0 {
			prefix = code[:idx]
		}
		if category, ok := c.lookup(prefix); ok {
			seen[category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func (c Catalog) lookup(prefix string) (string, bool) {
	if c.Prefixes == nil {
		return "", false
	}
	if category, ok := c.Prefixes[prefix]; ok {
		return category, true
	}
	upper := strings.ToUpper(prefix)
	if category, ok := c.Prefixes[upper]; ok {
		return category, true
	}
	return "", false
}

func isNullCode(code string) bool {
	switch strings.ToLower(code) {
	case "", "none", "nan", "null":
		return true
	}
	return false
}

// DefaultCatalog is the canonical prefix table: the ICD-10 vocabulary the
// current intake form produces, merged with the ICD-9 prefixes still present
// in historic records.
func DefaultCatalog() Catalog {
	return Catalog{Prefixes: map[string]string{
		// ICD-10
		"E10": CategoryDiabetes,
		"E11": CategoryDiabetes,
		"I10": CategoryHypertension,
		"I25": CategoryHeartDisease,
		"I50": CategoryHeartFailure,
		"J44": CategoryCOPD,
		"N17": CategoryKidneyFailure,
		"N18": CategoryKidneyDisease,
		"E78": CategoryCholesterol,

		// ICD-9 (legacy exports)
		"250": CategoryDiabetes,
		"401": CategoryHypertension,
		"414": CategoryHeartDisease,
		"428": CategoryHeartFailure,
		"496": CategoryCOPD,
		"585": CategoryKidneyFailure,
		"272": CategoryCholesterol,
	}}
}
