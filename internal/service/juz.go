package service

// requiredExamTable maps a memorization target juz to the juz it must be
// examined on. Targets absent from the table require no exam.
var requiredExamTable = map[int]int{
	29: 30,
	28: 29,
	1:  30,
}

// RequiredExamJuz derives the exam juz from a chosen juz code like "30A",
// "29B" or "1A". It returns nil when no exam is required, including for
// juz 30 targets and for codes that do not start with a juz number. A pure,
// total function over its input.
func RequiredExamJuz(chosenJuz string) *int {
	juz := parseJuzNumber(chosenJuz)
	if required, ok := requiredExamTable[juz]; ok {
		return &required
	}
	return nil
}

// IsExamRequired reports whether the chosen juz carries an exam obligation.
func IsExamRequired(chosenJuz string) bool {
	return RequiredExamJuz(chosenJuz) != nil
}

// parseJuzNumber extracts the leading juz number from a code such as "28B".
// Returns 0 for codes without a leading number.
func parseJuzNumber(code string) int {
	n := 0
	seen := false
	for _, r := range code {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
