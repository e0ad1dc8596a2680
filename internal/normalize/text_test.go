package normalize

import (
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims and collapses whitespace",
			input: "  강사의   전문성에  만족한다  ",
			want:  "강사의 전문성에 만족한다",
		},
		{
			name:  "fullwidth digits fold to ascii",
			input: "１. 교육 내용",
			want:  "1. 교육 내용",
		},
		{
			name:  "tabs and newlines collapse",
			input: "교육\t시설은\n편리했다",
			want:  "교육 시설은 편리했다",
		},
		{
			name:  "empty stays empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.input); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompareKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips spaces and terminal punctuation",
			input: "강사의 전문성에 만족한다?",
			want:  "강사의전문성에만족한다",
		},
		{
			name:  "numbering and brackets removed",
			input: "1. (필수) 교육-내용_만족도:",
			want:  "1필수교육내용만족도",
		},
		{
			name:  "latin lowercased",
			input: "MBTI 검사 결과",
			want:  "mbti검사결과",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareKey(tt.input); got != tt.want {
				t.Errorf("CompareKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompareKeyNoiseInvariance(t *testing.T) {
	// Labels that differ only in spacing or punctuation must produce the
	// same comparison key.
	pairs := [][2]string{
		{"강의 내용은 실무에 도움이 되었다", "강의 내용은 실무에 도움이 되었다."},
		{"교육 시설은 편리했다?", "교육시설은 편리했다"},
		{"강사의 전문성", " 강사의  전문성 "},
	}

	for _, p := range pairs {
		if CompareKey(p[0]) != CompareKey(p[1]) {
			t.Errorf("CompareKey(%q) != CompareKey(%q)", p[0], p[1])
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   ") {
		t.Error("IsBlank(whitespace) = false, want true")
	}
	if !IsBlank("") {
		t.Error("IsBlank(empty) = false, want true")
	}
	if IsBlank("문항") {
		t.Error("IsBlank(non-empty) = true, want false")
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"both empty", nil, nil, 0.0},
		{"one empty", []string{"강사"}, nil, 0.0},
		{"identical", []string{"강사", "만족"}, []string{"강사", "만족"}, 1.0},
		{"disjoint", []string{"강사"}, []string{"시설"}, 0.0},
		{"partial", []string{"강사", "만족"}, []string{"강사", "시설", "환경"}, 0.25},
		{"duplicates collapse", []string{"강사", "강사"}, []string{"강사"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("Jaccard() = %v, want %v", got, tt.want)
			}
		})
	}
}
