package extract

import "testing"

func TestClassifyFieldName(t *testing.T) {
	tests := []struct {
		name string
		want FieldKind
	}{
		// The built-in template names.
		{"FECHA DE REALIZACIÓN DEL EXÁMEN", KindExamDate},
		{"TIPO DE EXÁMEN MÉDICO OCUPACIONAL", KindExamType},
		{"Apellidos y Nombres", KindFullName},
		{"Documento de Identificación", KindDocumentID},
		{"Cargo", KindJobTitle},
		{"CONCEPTO DE APTITUD OCUPACIONAL", KindFitnessConcept},
		{"Exámenes practicados (base del concepto)", KindExamsPerformed},
		{"RECOMENDACIONES MÉDICAS", KindMedicalRecommendations},
		{"RECOMENDACIONES OCUPACIONALES", KindOccupationalRecommendations},
		{"HÁBITOS Y ESTILO DE VIDA SALUDABLES", KindHealthyHabits},

		// Renames keeping the leading words still classify.
		{"fecha de realización", KindExamDate},
		{"Documento", KindDocumentID},
		{"  cargo  ", KindJobTitle},
		{"habitos saludables", KindHealthyHabits},

		// Anything else resolves to no heuristic.
		{"Empresa", KindUnknown},
		{"", KindUnknown},
		{"cargos pendientes", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFieldName(tt.name); got != tt.want {
				t.Errorf("ClassifyFieldName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFieldKindString(t *testing.T) {
	if got := KindExamDate.String(); got != "exam_date" {
		t.Errorf("KindExamDate.String() = %q, want %q", got, "exam_date")
	}
	if got := FieldKind(999).String(); got != "unknown" {
		t.Errorf("FieldKind(999).String() = %q, want %q", got, "unknown")
	}
}

func TestFieldKindApply(t *testing.T) {
	page := "DÍA MES AÑO 15 08 2023\n" +
		"EVALUACIÓN MÉDICO OCUPACIONAL DE INGRESO\n" +
		"DATOS DEL TRABAJADOR / ASPIRANTE\n" +
		"APELLIDOS Y NOMBRES\n" +
		"GOMEZ RIOS PEDRO\n" +
		"CC 1.234.567\n" +
		"Cargo\nSOLDADOR CALIFICADO\n" +
		"CONCEPTO DE APTITUD OCUPACIONAL\nAPTO\n"

	tests := []struct {
		kind FieldKind
		want string
	}{
		{KindExamDate, "2023-08-15"},
		{KindExamType, "EVALUACIÓN MÉDICO OCUPACIONAL DE INGRESO"},
		{KindFullName, "Gomez Rios Pedro"},
		{KindDocumentID, "CC 1.234.567"},
		{KindJobTitle, "Soldador Calificado"},
		{KindFitnessConcept, "Apto"},
		{KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Apply(page); got != tt.want {
				t.Errorf("%v.Apply() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}
