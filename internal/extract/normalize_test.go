package extract

import "testing"

func TestNormalizeSpaces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "already normalized",
			input: "APTO SIN RESTRICCIONES",
			want:  "APTO SIN RESTRICCIONES",
		},
		{
			name:  "collapses runs of spaces",
			input: "APTO    SIN     RESTRICCIONES",
			want:  "APTO SIN RESTRICCIONES",
		},
		{
			name:  "collapses newlines and tabs",
			input: "APTO\n\tSIN\n\nRESTRICCIONES",
			want:  "APTO SIN RESTRICCIONES",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  \n APTO \t ",
			want:  "APTO",
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSpaces(tt.input); got != tt.want {
				t.Errorf("NormalizeSpaces(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpacesIdempotent(t *testing.T) {
	input := "  FECHA   DE \n REALIZACIÓN  "
	once := NormalizeSpaces(input)
	twice := NormalizeSpaces(once)
	if once != twice {
		t.Errorf("normalization not idempotent: %q != %q", once, twice)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"GOMEZ RIOS PEDRO", "Gomez Rios Pedro"},
		{"PÉREZ ÑUSTES MARÍA", "Pérez Ñustes María"},
		{"apto", "Apto"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.input); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
