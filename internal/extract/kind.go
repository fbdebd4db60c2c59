package extract

import "strings"

// FieldKind identifies which template heuristic serves a configured field
// name. Classification happens once per rule; the zero value means no
// heuristic applies and the field resolves to an empty string.
type FieldKind int

const (
	KindUnknown FieldKind = iota
	KindExamDate
	KindExamType
	KindFullName
	KindDocumentID
	KindJobTitle
	KindFitnessConcept
	KindExamsPerformed
	KindMedicalRecommendations
	KindOccupationalRecommendations
	KindHealthyHabits
)

var kindNames = map[FieldKind]string{
	KindUnknown:                     "unknown",
	KindExamDate:                    "exam_date",
	KindExamType:                    "exam_type",
	KindFullName:                    "full_name",
	KindDocumentID:                  "document_id",
	KindJobTitle:                    "job_title",
	KindFitnessConcept:              "fitness_concept",
	KindExamsPerformed:              "exams_performed",
	KindMedicalRecommendations:      "medical_recommendations",
	KindOccupationalRecommendations: "occupational_recommendations",
	KindHealthyHabits:               "healthy_habits",
}

func (k FieldKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ClassifyFieldName maps a configured field name to its FieldKind. Matching
// is case-insensitive on the trimmed name and mirrors the field names of the
// built-in occupational template; user renames that keep the leading words
// still classify. Unrecognized names return KindUnknown.
func ClassifyFieldName(name string) FieldKind {
	key := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(key, "fecha de realiz"):
		return KindExamDate
	case strings.HasPrefix(key, "tipo de ex"):
		return KindExamType
	case key == "apellidos y nombres":
		return KindFullName
	case strings.HasPrefix(key, "documento"):
		return KindDocumentID
	case key == "cargo":
		return KindJobTitle
	case strings.HasPrefix(key, "concepto de aptitud"):
		return KindFitnessConcept
	case strings.HasPrefix(key, "exámenes practicados"):
		return KindExamsPerformed
	case strings.HasPrefix(key, "recomendaciones m"):
		return KindMedicalRecommendations
	case strings.HasPrefix(key, "recomendaciones o"):
		return KindOccupationalRecommendations
	case strings.HasPrefix(key, "hábitos"), strings.HasPrefix(key, "habitos"):
		return KindHealthyHabits
	default:
		return KindUnknown
	}
}

// Apply runs the heuristic extractor for k against one page's text.
// KindUnknown (and any future kind without an extractor) yields "".
func (k FieldKind) Apply(text string) string {
	switch k {
	case KindExamDate:
		return ExamDate(text)
	case KindExamType:
		return ExamType(text)
	case KindFullName:
		name, _ := NameAndDocument(text)
		return name
	case KindDocumentID:
		_, doc := NameAndDocument(text)
		return doc
	case KindJobTitle:
		return JobTitle(text)
	case KindFitnessConcept:
		return FitnessConcept(text)
	case KindExamsPerformed:
		return ExamsPerformed(text)
	case KindMedicalRecommendations:
		return MedicalRecommendations(text)
	case KindOccupationalRecommendations:
		return OccupationalRecommendations(text)
	case KindHealthyHabits:
		return HealthyHabits(text)
	default:
		return ""
	}
}
