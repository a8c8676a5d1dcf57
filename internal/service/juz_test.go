package service

import "testing"

func TestRequiredExamJuz(t *testing.T) {
	tests := []struct {
		name      string
		chosenJuz string
		want      *int
	}{
		{name: "juz 29 target requires juz 30 exam", chosenJuz: "29A", want: intPtr(30)},
		{name: "juz 28 target requires juz 29 exam", chosenJuz: "28B", want: intPtr(29)},
		{name: "juz 1 target requires juz 30 exam", chosenJuz: "1A", want: intPtr(30)},
		{name: "juz 30 target requires no exam", chosenJuz: "30A", want: nil},
		{name: "bare juz number without variant", chosenJuz: "29", want: intPtr(30)},
		{name: "unlisted juz requires no exam", chosenJuz: "15A", want: nil},
		{name: "no leading number", chosenJuz: "Amma", want: nil},
		{name: "empty code", chosenJuz: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredExamJuz(tt.chosenJuz)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("RequiredExamJuz(%q) = %v, want %v", tt.chosenJuz, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("RequiredExamJuz(%q) = %d, want %d", tt.chosenJuz, *got, *tt.want)
			}
		})
	}
}

// Every possible input yields either nil or a juz in 29..30; the derivation
// must never panic or produce an unexaminable juz.
func TestRequiredExamJuzTotality(t *testing.T) {
	inputs := []string{"", "0", "000", "31Z", "999", "A29", "29A30", "  29", "30", "1", "28"}
	for _, in := range inputs {
		got := RequiredExamJuz(in)
		if got != nil && (*got < 29 || *got > 30) {
			t.Errorf("RequiredExamJuz(%q) = %d, outside exam juz range", in, *got)
		}
	}
}

func TestIsExamRequired(t *testing.T) {
	if !IsExamRequired("29A") {
		t.Error("IsExamRequired(29A) = false, want true")
	}
	if IsExamRequired("30B") {
		t.Error("IsExamRequired(30B) = true, want false")
	}
}

func intPtr(v int) *int { return &v }
