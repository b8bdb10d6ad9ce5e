package service

// Grade thresholds: percent >= 86 -> 5, >= 71 -> 4, >= 50 -> 3, else 2.
const (
	gradeExcellentFrom = 86
	gradeGoodFrom      = 71
	gradeFairFrom      = 50
)

// Score computes the final percent (floored) and the grade for a finished
// quiz. It is a pure function of the counters.
func Score(correct, total int) (percent, grade int) {
	if total > 0 {
		percent = 100 * correct / total
	}

	switch {
	case percent >= gradeExcellentFrom:
		grade = 5
	case percent >= gradeGoodFrom:
		grade = 4
	case percent >= gradeFairFrom:
		grade = 3
	default:
		grade = 2
	}

	return percent, grade
}
