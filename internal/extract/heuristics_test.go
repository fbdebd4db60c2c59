package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExamDate_LabeledTriple(t *testing.T) {
	text := "CERTIFICADO DE APTITUD\nDÍA MES AÑO 15 08 2023\nCIUDAD: BOGOTÁ"
	assert.Equal(t, "2023-08-15", ExamDate(text))
}

func TestExamDate_LabelWithoutAccents(t *testing.T) {
	text := "DIA MES ANO 03 12 2022"
	assert.Equal(t, "2022-12-03", ExamDate(text))
}

func TestExamDate_BareTriple(t *testing.T) {
	text := "Fecha de atención 20 03 2024 sede norte"
	assert.Equal(t, "2024-03-20", ExamDate(text))
}

func TestExamDate_SkipsPrintFooter(t *testing.T) {
	// The first dd mm yyyy triple sits right after the print timestamp marker
	// and must be skipped in favor of the real exam date further down.
	text := "Impreso el 01 01 2020 10:30\n" +
		strings.Repeat("texto de relleno del certificado ", 4) + "\n" +
		"Fecha de la evaluación 20 03 2024"
	assert.Equal(t, "2024-03-20", ExamDate(text))
}

func TestExamDate_OnlyFooterDate(t *testing.T) {
	text := "Impreso el 01 01 2020"
	assert.Equal(t, "", ExamDate(text))
}

func TestExamDate_NoDate(t *testing.T) {
	assert.Equal(t, "", ExamDate("sin fechas en esta página"))
}

func TestExamType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "ingreso",
			text: "CERTIFICADO\nEVALUACIÓN MÉDICO OCUPACIONAL DE INGRESO\nDATOS",
			want: "EVALUACIÓN MÉDICO OCUPACIONAL DE INGRESO",
		},
		{
			name: "periodica sin acentos",
			text: "EVALUACION MEDICO OCUPACIONAL PERIODICA",
			want: "EVALUACION MEDICO OCUPACIONAL PERIODICA",
		},
		{
			name: "lowercase still matches",
			text: "evaluación médico ocupacional de egreso",
			want: "evaluación médico ocupacional de egreso",
		},
		{
			name: "absent",
			text: "CERTIFICADO DE APTITUD",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExamType(tt.text))
		})
	}
}

func TestJobTitle_LabeledLine(t *testing.T) {
	text := "EMPRESA XYZ\nCargo\nOPERARIO DE ASEO\nEPS SURA"
	assert.Equal(t, "Operario De Aseo", JobTitle(text))
}

func TestJobTitle_LineBeforeNIT(t *testing.T) {
	text := "EMPRESA XYZ\nAUXILIAR CONTABLE\nNIT 900123456"
	assert.Equal(t, "Auxiliar Contable", JobTitle(text))
}

func TestJobTitle_Absent(t *testing.T) {
	assert.Equal(t, "", JobTitle("sin sección de cargo"))
}

func TestFitnessConcept(t *testing.T) {
	text := "CONCEPTO DE APTITUD OCUPACIONAL\nAPTO SIN RESTRICCIONES\nFIRMA"
	assert.Equal(t, "Apto Sin Restricciones", FitnessConcept(text))

	assert.Equal(t, "", FitnessConcept("página sin concepto"))
}

func TestFindBlock(t *testing.T) {
	text := "RECOMENDACIONES MÉDICAS\n" +
		"- Usar protección auditiva\n" +
		"• Pausas activas cada dos horas\n" +
		"RECOMENDACIONES OCUPACIONALES\n" +
		"- No levantar cargas"

	got := FindBlock(text, "RECOMENDACIONES MÉDICAS", []string{"RECOMENDACIONES OCUPACIONALES"})
	assert.Equal(t, "Usar protección auditiva; Pausas activas cada dos horas", got)
}

func TestFindBlock_MissingStartKey(t *testing.T) {
	assert.Equal(t, "", FindBlock("texto cualquiera", "RECOMENDACIONES MÉDICAS", nil))
}

func TestFindBlock_WindowCapsLongSections(t *testing.T) {
	// Without a stop key the block is cut at the window, never the whole page.
	text := "INICIO\n" + strings.Repeat("relleno ", 400)
	got := FindBlock(text, "INICIO", nil)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len([]rune(got)), 1200)
}

func TestSectionExtractors_DoNotBleedIntoEachOther(t *testing.T) {
	text := "El concepto de Aptitud se definió a partir de:\n" +
		"- Audiometría\n" +
		"- Visiometría\n" +
		"RECOMENDACIONES MÉDICAS\n" +
		"- Control con optometría\n" +
		"RECOMENDACIONES OCUPACIONALES\n" +
		"- Uso de elementos de protección\n" +
		"HABITOS Y ESTILO DE VIDA SALUDABLES\n" +
		"- Actividad física regular\n" +
		"OTRAS OBSERVACIONES\n" +
		"Ninguna"

	assert.Equal(t, "ir de:; Audiometría; Visiometría", ExamsPerformed(text))
	assert.Equal(t, "Control con optometría", MedicalRecommendations(text))
	assert.Equal(t, "Uso de elementos de protección", OccupationalRecommendations(text))
	assert.Equal(t, "Actividad física regular", HealthyHabits(text))
}
