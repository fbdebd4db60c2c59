// Package rules holds the extraction configuration model: the FieldRule
// pairs that describe output columns and the preset files they round-trip
// through.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// FieldRule describes one output column: the column header and an optional
// regular expression. An empty Pattern means the field falls back to the
// template heuristic matching its name (when heuristics are enabled).
//
// Pattern validity is not checked here; the pipeline compiles patterns at
// run setup and reports a descriptive error then. Constructing a rule with a
// broken pattern never fails by itself.
type FieldRule struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// Active reports whether the rule takes part in a run. Rules without a name
// have no column to write to.
func (r FieldRule) Active() bool {
	return r.Name != ""
}

// DefaultTemplate returns the built-in rule set for the occupational
// medical-certificate layout. Every pattern is empty: the fields resolve
// through the template heuristics keyed by these exact names.
func DefaultTemplate() []FieldRule {
	return []FieldRule{
		{Name: "FECHA DE REALIZACIÓN DEL EXÁMEN"},
		{Name: "TIPO DE EXÁMEN MÉDICO OCUPACIONAL"},
		{Name: "Apellidos y Nombres"},
		{Name: "Documento de Identificación"},
		{Name: "Cargo"},
		{Name: "CONCEPTO DE APTITUD OCUPACIONAL"},
		{Name: "Exámenes practicados (base del concepto)"},
		{Name: "RECOMENDACIONES MÉDICAS"},
		{Name: "RECOMENDACIONES OCUPACIONALES"},
		{Name: "HÁBITOS Y ESTILO DE VIDA SALUDABLES"},
	}
}

// preset is the interchange document: {"fields":[{"name","pattern"},...]}.
// Unknown extra keys are ignored on read; a missing "fields" key reads as an
// empty rule list.
type preset struct {
	Fields []FieldRule `json:"fields"`
}

// LoadPreset reads a preset JSON file and returns its rules. The document
// shape is validated before decoding so a malformed preset produces one
// descriptive error instead of silently empty rules.
func LoadPreset(path string) ([]FieldRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read preset: %w", err)
	}
	return ParsePreset(data)
}

// ParsePreset decodes preset JSON bytes into rules.
func ParsePreset(data []byte) ([]FieldRule, error) {
	if err := validatePresetShape(data); err != nil {
		return nil, err
	}
	var p preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid preset JSON: %w", err)
	}
	return p.Fields, nil
}

// SavePreset writes rules to a preset JSON file, indented for hand editing.
func SavePreset(path string, fields []FieldRule) error {
	if fields == nil {
		fields = []FieldRule{}
	}
	data, err := json.MarshalIndent(preset{Fields: fields}, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode preset: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write preset: %w", err)
	}
	return nil
}
