package service

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name        string
		correct     int
		total       int
		wantPercent int
		wantGrade   int
	}{
		{"perfect", 50, 50, 100, 5},
		{"excellent boundary", 43, 50, 86, 5},
		{"just below excellent", 42, 50, 84, 4},
		{"good boundary", 36, 50, 72, 4},
		{"seventy percent is still fair", 35, 50, 70, 3},
		{"fair boundary", 25, 50, 50, 3},
		{"just below fair", 24, 50, 48, 2},
		{"zero", 0, 50, 0, 2},
		{"floor division", 2, 3, 66, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			percent, grade := Score(tc.correct, tc.total)
			if percent != tc.wantPercent {
				t.Fatalf("percent: want %d, got %d", tc.wantPercent, percent)
			}
			if grade != tc.wantGrade {
				t.Fatalf("grade: want %d, got %d", tc.wantGrade, grade)
			}
		})
	}
}
