package mapping

import (
	"testing"
)

func TestScoreIdentity(t *testing.T) {
	labels := []string{
		"강사의 전문성에 만족한다",
		"교육 시설은 편리했다",
		"MBTI 검사 결과가 유익했다",
		"a",
	}

	for _, label := range labels {
		if got := Score(label, label); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", label, label, got)
		}
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"강사의 전문성에 만족한다", "강사 전문성 만족도"},
		{"교육 시설은 편리했다", "강의 내용은 실무에 도움이 되었다"},
		{"목표 설정", "만다라트 목표 수립"},
		{"", "강사"},
	}

	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q) = %v but Score(%q, %q) = %v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreBlankInputs(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"left empty", "", "강사 전문성"},
		{"right whitespace", "강사 전문성", "   "},
		{"punctuation only", "???", "강사 전문성"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a, tt.b); got != 0.0 {
				t.Errorf("Score(%q, %q) = %v, want 0.0", tt.a, tt.b, got)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"강사의 전문성에 만족한다", "강사 전문성 만족도"},
		{"교육 시설은 편리했다", "강의 내용은 실무에 도움이 되었다"},
		{"완전히 다른 문장", "전혀 무관한 내용"},
	}

	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Score(%q, %q) = %v, outside [0, 1]", p[0], p[1], got)
		}
	}
}

func TestScoreNoiseRobustness(t *testing.T) {
	// Trailing question marks and spacing differences must not change the
	// score against a third label.
	clean := "강사의 전문성에 만족한다"
	noisy := "  강사의  전문성에 만족한다?  "
	reference := "강사 전문성 만족도"

	if Score(clean, reference) != Score(noisy, reference) {
		t.Errorf("noise changed score: clean=%v noisy=%v",
			Score(clean, reference), Score(noisy, reference))
	}
	if got := Score(clean, noisy); got != 1.0 {
		t.Errorf("Score(clean, noisy) = %v, want 1.0", got)
	}
}

func TestScoreRelatedVsUnrelated(t *testing.T) {
	related := Score("강사의 전문성에 만족한다", "강사 전문성 만족도")
	unrelated := Score("교육 시설은 편리했다", "강의 내용은 실무에 도움이 되었다")

	if related < 0.5 {
		t.Errorf("related labels score = %v, want >= 0.5", related)
	}
	if unrelated >= 0.5 {
		t.Errorf("unrelated labels score = %v, want < 0.5", unrelated)
	}
	if related <= unrelated {
		t.Errorf("related (%v) should outscore unrelated (%v)", related, unrelated)
	}
}
