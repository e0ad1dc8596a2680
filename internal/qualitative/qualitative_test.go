package qualitative

import (
	"testing"
)

func TestIsMeaningless(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"없음", true},
		{"없습니다.", true},
		{"특별히 없음", true},
		{"모름", true},
		{"x", true},
		{"   ", true},
		{"...", true},
		{"123", true},
		{"강의 자료가 더 필요합니다", false},
		{"실습 시간이 부족했음", false},
	}
	for _, tt := range tests {
		if got := IsMeaningless(tt.input); got != tt.want {
			t.Errorf("IsMeaningless(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"도움이 됐습니다.", "도움이 됐음"},
		{"실습시간이 부족했어요", "실습시간이 부족했음"},
		{"내용이 좋앗습니다", "내용이 좋았음"},
		{"자료를 받을수있으면 좋겠다", "자료를 받을 수 있으면 좋겠음"},
		{"  공백   정리  ", "공백 정리"},
		{"강의가 유익했다.", "강의가 유익했음"},
	}
	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPreprocessDropsPlaceholders(t *testing.T) {
	answers := []string{
		"없음",
		"강의 내용이 유익했습니다.",
		"...",
		"실습 시간이 부족했어요",
	}
	got := Preprocess(answers)
	want := []string{"강의 내용이 유익했음", "실습 시간이 부족했음"}
	if len(got) != len(want) {
		t.Fatalf("Preprocess returned %d answers, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("answer %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords("강의 자료를 미리 받을 수 있으면 좋겠음")
	want := map[string]bool{"강의": true, "자료": true, "미리": true, "받을": true, "있으면": true, "좋겠음": true}
	if len(got) != len(want) {
		t.Fatalf("Keywords = %v, want %d words", got, len(want))
	}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected keyword %q in %v", w, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a, b := "실습 시간이 부족했음", "실습 시간 부족"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("Similarity not symmetric for %q, %q", a, b)
	}
	if Similarity(a, a) < 0.99 {
		t.Errorf("Similarity(a, a) = %v, want 1.0", Similarity(a, a))
	}
}

func TestIntegrateGroupsSimilarAnswers(t *testing.T) {
	answers := []string{
		"실습 시간이 부족했음",
		"실습 시간 부족",
		"실습 시간이 너무 부족했음",
		"강의 자료가 유익했음",
	}
	groups := Integrate(answers, DefaultGroupThreshold)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2: %+v", len(groups), groups)
	}
	if groups[0].Count != 3 {
		t.Errorf("largest group count = %d, want 3", groups[0].Count)
	}
	if groups[1].Count != 1 {
		t.Errorf("second group count = %d, want 1", groups[1].Count)
	}
}

func TestIntegrateRepresentativeIsMostInformative(t *testing.T) {
	answers := []string{
		"실습 시간 부족",
		"실습 시간이 많이 부족해서 아쉬웠음",
	}
	groups := Integrate(answers, 0.3)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	if groups[0].Representative != "실습 시간이 많이 부족해서 아쉬웠음" {
		t.Errorf("representative = %q, want the longer answer", groups[0].Representative)
	}
}

func TestSummarizeEndToEnd(t *testing.T) {
	answers := []string{
		"없음",
		"실습시간이 부족했습니다.",
		"실습 시간이 부족했어요",
		"...",
	}
	groups := Summarize(answers)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	if groups[0].Count != 2 {
		t.Errorf("group count = %d, want 2", groups[0].Count)
	}
}
