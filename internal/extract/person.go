package extract

import (
	"regexp"
	"strings"
)

// NameAndDocument pulls the worker's full name and identity document from the
// personal-data block of a certificate page.
//
// The template places the worker block ("DATOS DEL TRABAJADOR / ASPIRANTE")
// right next to the job-title block, and both hold uppercase lines, so the
// extraction is confined to the block between the recognized start header and
// the first stop header. Nothing outside that range is ever considered; when
// no block is found the page yields ("", "") rather than a guess.
//
// Inside the block three strategies run in order:
//
//	A) a literal "Apellidos y Nombres" label followed within 7 lines by a
//	   plausible name, with the document searched outward from that line;
//	B) name and document on the same line;
//	C) a document line alone, with the name searched up to 6 lines back and
//	   4 lines forward (backward wins).
//
// A document without a name is acceptable; a name without confidence is not.
func NameAndDocument(text string) (name, document string) {
	lines := splitLines(text)

	startIdx := -1
	for i, ln := range lines {
		if containsAny(strings.ToUpper(ln), personBlockStartMarkers) {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return "", ""
	}

	endIdx := len(lines)
	for j := startIdx + 1; j < len(lines); j++ {
		if containsAny(strings.ToUpper(lines[j]), personBlockStopMarkers) {
			endIdx = j
			break
		}
	}

	block := lines[startIdx:endIdx]
	if len(block) == 0 {
		return "", ""
	}

	// A) Explicit label.
	for i, ln := range block {
		if !strings.Contains(strings.ToUpper(ln), nameLabel) {
			continue
		}
		limit := i + 8
		if limit > len(block) {
			limit = len(block)
		}
		for k := i + 1; k < limit; k++ {
			cand := strings.TrimSpace(block[k])
			if cand != "" && looksLikeUpperName(cand) {
				return TitleCase(cand), findDocumentNear(block, k)
			}
		}
	}

	// B) Name and document on one line.
	for _, ln := range block {
		m := nameDocSameLineRe.FindStringSubmatch(ln)
		if m != nil && looksLikeUpperName(m[1]) {
			return TitleCase(NormalizeSpaces(m[1])), formatDocument(m[2], m[3])
		}
	}

	// C) Document line anchors the search for a nearby name.
	for i, ln := range block {
		m := documentRe.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		document = formatDocument(m[1], m[2])
		for up := 1; up <= 6; up++ {
			j := i - up
			if j < 0 {
				break
			}
			if cand := strings.TrimSpace(block[j]); looksLikeUpperName(cand) {
				return TitleCase(NormalizeSpaces(cand)), document
			}
		}
		for dn := 1; dn <= 4; dn++ {
			j := i + dn
			if j >= len(block) {
				break
			}
			if cand := strings.TrimSpace(block[j]); looksLikeUpperName(cand) {
				return TitleCase(NormalizeSpaces(cand)), document
			}
		}
		return "", document
	}

	return "", ""
}

// nameLabel marks strategy A inside the worker block.
const nameLabel = "APELLIDOS Y NOMBRES"

// personBlockStartMarkers open the worker/applicant data block. Matching is
// whole-line "contains" on the uppercased line.
var personBlockStartMarkers = []string{
	"DATOS DEL TRABAJADOR / ASPIRANTE",
	"DATOS DEL TRABAJADOR",
	"DATOS DEL TRABAJADOR/ASPIRANTE",
	"DATOS DEL TRABAJADOR O ASPIRANTE",
}

// personBlockStopMarkers close the worker block: headers of the sections
// that follow it in the template (fitness concept, job title, insurer and
// pension-fund codes, address, exams, observations, recommendations).
var personBlockStopMarkers = []string{
	"CONCEPTO DE APTITUD", "CONCEPTO MÉDICO OCUPACIONAL", "CONCEPTO MEDICO OCUPACIONAL",
	"CARGO", "EPS", "ARL", "AFP", "NIT", "DIRECCIÓN", "DIRECCION",
	"EXÁMENES", "EXAMENES", "OBSERVACIONES", "RECOMENDACIONES",
}

// upperNameLetters is the accepted letter set for a name line: uppercase
// ASCII plus the Spanish accented vowels and Ñ.
const upperNameLetters = "A-ZÁÉÍÓÚÑ"

var (
	// documentRe matches an identity document: a type token (citizen ID,
	// minor ID, foreigner ID or special permit, dots allowed) followed by a
	// number segment of 5+ characters.
	documentRe = regexp.MustCompile(`(?i)\b(C\.?C\.?|TI|CE|PT)\s+([0-9A-Z.\- ]{5,})\b`)

	// nameDocSameLineRe matches strategy B: uppercase name segment, then a
	// document token and number on the same line.
	nameDocSameLineRe = regexp.MustCompile(`^([` + upperNameLetters + ` ]{6,}).*?\b(C\.?C\.?|TI|CE|PT)\s+([0-9A-Z.\- ]{5,})`)

	upperNameRe = regexp.MustCompile(`^[` + upperNameLetters + ` ]{6,}$`)
)

// jobTitleTokens is the deny-list that keeps a job title line from being
// mistaken for a name: any line containing one of these tokens is rejected.
var jobTitleTokens = map[string]struct{}{
	"GENERADOR": {}, "GENERADORA": {}, "OPERARIO": {}, "OPERARIA": {},
	"AUXILIAR": {}, "ASEO": {}, "OFICIOS": {}, "VARIOS": {},
	"CONDUCTOR": {}, "VENDEDOR": {}, "VENDEDORA": {}, "MENSAJERO": {},
	"JEFE": {}, "SUPERVISOR": {}, "SUPERVISORA": {}, "APRENDIZ": {},
	"COORDINADOR": {}, "COORDINADORA": {}, "PROFESIONAL": {},
	"TECNICO": {}, "TÉCNICO": {}, "AYUDANTE": {}, "MANTENIMIENTO": {},
}

// looksLikeUpperName reports whether s is a plausible person-name line: all
// uppercase letters and spaces, at least 6 characters, at least two word
// tokens longer than one character, and no deny-listed job-title token.
func looksLikeUpperName(s string) bool {
	su := strings.ToUpper(s)
	if len([]rune(su)) < 6 {
		return false
	}
	if !upperNameRe.MatchString(su) {
		return false
	}
	words := 0
	for _, tok := range strings.Fields(su) {
		if len([]rune(tok)) > 2 {
			if _, denied := jobTitleTokens[tok]; denied {
				return false
			}
		}
		if len([]rune(tok)) > 1 {
			words++
		}
	}
	return words >= 2
}

// findDocumentNear scans outward from base (same line, then ±1, ±2, … ±6,
// backward first at each distance) for a document match within the block.
func findDocumentNear(block []string, base int) string {
	for off := 0; off <= 6; off++ {
		for _, j := range []int{base - off, base + off} {
			if j < 0 || j >= len(block) {
				continue
			}
			if m := documentRe.FindStringSubmatch(block[j]); m != nil {
				return formatDocument(m[1], m[2])
			}
		}
	}
	return ""
}

// formatDocument renders a canonical document string: type token uppercased
// with dots stripped, one space, normalized number segment.
func formatDocument(typ, number string) string {
	typ = strings.ReplaceAll(strings.ToUpper(typ), ".", "")
	return typ + " " + NormalizeSpaces(number)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
