package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// The extractors in this file encode layout knowledge about the occupational
// medical certificate template: labeled blocks, fixed Spanish headers and the
// relative position of values to their labels. Each one is a pure function
// over a single page's text and returns "" when it cannot find a confident
// match. An empty cell is always preferred over a conflated value.

var (
	labeledDateRe = regexp.MustCompile(`D[ÍI]A\s+MES\s+A[ÑN]O\s+(\d{2})\s+(\d{2})\s+(\d{4})`)
	bareDateRe    = regexp.MustCompile(`(\d{2})\s+(\d{2})\s+(\d{4})`)

	examTypeRe = regexp.MustCompile(`(?im)(EVALUACI[ÓO]N?\s*M[ÉE]DICO\s*OCUPACIONAL.*)$`)

	jobTitleLabeledRe = regexp.MustCompile(`(?m)^Cargo\s*\n([A-Za-zÁÉÍÓÚÑ ]{3,})`)
	jobTitleBeforeNIT = regexp.MustCompile(`\n([A-ZÁÉÍÓÚÑ ]{3,})\nNIT\b`)

	fitnessConceptRe = regexp.MustCompile(`CONCEPTO DE APTITUD OCUPACIONAL\s*\n([A-ZÁÉÍÓÚÑ .\-]+)`)
)

// printFooterMarker precedes the print timestamp in the page footer. A bare
// dd mm yyyy triple shortly after it is the print date, not the exam date.
const printFooterMarker = "Impreso el"

// ExamDate finds the examination date and reformats it as YYYY-MM-DD.
// It prefers the labeled "DÍA MES AÑO" triple; otherwise it takes the first
// bare dd mm yyyy triple that is not part of the page-footer print timestamp.
func ExamDate(text string) string {
	if m := labeledDateRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	for _, loc := range bareDateRe.FindAllStringSubmatchIndex(text, -1) {
		start := loc[0]
		preStart := start - 60
		if preStart < 0 {
			preStart = 0
		}
		if strings.Contains(text[preStart:start], printFooterMarker) {
			continue
		}
		d := text[loc[2]:loc[3]]
		mth := text[loc[4]:loc[5]]
		y := text[loc[6]:loc[7]]
		return fmt.Sprintf("%s-%s-%s", y, mth, d)
	}
	return ""
}

// ExamType returns the remainder of the line that starts with the
// "EVALUACIÓN MÉDICO OCUPACIONAL" phrase, normalized.
func ExamType(text string) string {
	if m := examTypeRe.FindStringSubmatch(text); m != nil {
		return NormalizeSpaces(m[1])
	}
	return ""
}

// JobTitle extracts the position held by the worker. Two layouts occur in the
// template: an explicit "Cargo" label on its own line followed by the title,
// or an uppercase title line immediately preceding the company NIT line.
func JobTitle(text string) string {
	if m := jobTitleLabeledRe.FindStringSubmatch(text); m != nil {
		return TitleCase(NormalizeSpaces(m[1]))
	}
	if m := jobTitleBeforeNIT.FindStringSubmatch(text); m != nil {
		return TitleCase(NormalizeSpaces(m[1]))
	}
	return ""
}

// FitnessConcept extracts the occupational fitness concept, the uppercase
// verdict line under the "CONCEPTO DE APTITUD OCUPACIONAL" header.
func FitnessConcept(text string) string {
	if m := fitnessConceptRe.FindStringSubmatch(text); m != nil {
		return TitleCase(NormalizeSpaces(m[1]))
	}
	return ""
}

// blockWindow caps how far past a start key a section can extend before the
// stop keys are applied.
const blockWindow = 1200

// FindBlock locates startKey in the raw text, takes up to blockWindow runes
// after it, truncates at the first occurrence of any stop key, and flattens
// the surviving lines (bullet decoration stripped, each line normalized)
// into a single "; "-joined string.
func FindBlock(text, startKey string, stopKeys []string) string {
	idx := strings.Index(text, startKey)
	if idx == -1 {
		return ""
	}
	sub := text[idx+len(startKey):]
	if runes := []rune(sub); len(runes) > blockWindow {
		sub = string(runes[:blockWindow])
	}
	for _, sk := range stopKeys {
		if cut := strings.Index(sub, sk); cut != -1 {
			sub = sub[:cut]
		}
	}
	var parts []string
	for _, l := range strings.Split(sub, "\n") {
		l = NormalizeSpaces(strings.Trim(l, " -•\t"))
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "; ")
}

// Section start keys. Each section's stop-key list is the set of start keys
// of the sections that follow it, so consecutive blocks never bleed into each
// other.
const (
	examsStartKey          = "El concepto de Aptitud se definió a part"
	medicalRecsStartKey    = "RECOMENDACIONES MÉDICAS"
	occupationalRecsKey    = "RECOMENDACIONES OCUPACIONALES"
	healthyHabitsStartKey  = "HABITOS Y ESTILO DE VIDA SALUDABLES"
	otherObservationsKey   = "OTRAS OBSERVACIONES"
	informedConsentKey     = "Consentimiento informado"
	healthyHabitsShortStop = "HABITOS Y ESTILO"
)

// ExamsPerformed lists the exams the fitness concept was based on.
func ExamsPerformed(text string) string {
	return FindBlock(text, examsStartKey, []string{
		medicalRecsStartKey,
		occupationalRecsKey,
		healthyHabitsShortStop,
		otherObservationsKey,
		informedConsentKey,
	})
}

// MedicalRecommendations extracts the medical recommendations section.
func MedicalRecommendations(text string) string {
	return FindBlock(text, medicalRecsStartKey, []string{
		occupationalRecsKey,
		healthyHabitsShortStop,
		otherObservationsKey,
		informedConsentKey,
	})
}

// OccupationalRecommendations extracts the occupational recommendations
// section.
func OccupationalRecommendations(text string) string {
	return FindBlock(text, occupationalRecsKey, []string{
		healthyHabitsShortStop,
		otherObservationsKey,
		informedConsentKey,
	})
}

// HealthyHabits extracts the healthy-habits section.
func HealthyHabits(text string) string {
	return FindBlock(text, healthyHabitsStartKey, []string{
		otherObservationsKey,
		informedConsentKey,
	})
}
