package qualitative

import (
	"regexp"
	"strings"
)

// Free-text survey answers need cleanup before they can be grouped:
// placeholder answers dropped, common typos and spacing mistakes fixed,
// and sentence endings unified to the report's -했음/-함 register.

// Placeholder answers that carry no reviewable content.
var meaninglessPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[\s\-\_\.·,;:~!@#$%^&*()]*$`),
	regexp.MustCompile(`^없(음|다|습니다|어요|어)?\.?$`),
	regexp.MustCompile(`^(없|모름|글쎄|잘\s*모르겠|x|X|ㅇ|ㅁ)\.?$`),
	regexp.MustCompile(`^(특별히\s*|딱히\s*|별로\s*|해당\s*)?없(음|다|습니다)?\.?$`),
	regexp.MustCompile(`^(좋았습니다|좋음|좋다|굿|good|완벽|최고)\.?$`),
	regexp.MustCompile(`^잘\s*모르겠습니다\.?$`),
	regexp.MustCompile(`^\d+$`),
}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

func makeRules(pairs [][2]string) []rule {
	rules := make([]rule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, rule{regexp.MustCompile(p[0]), p[1]})
	}
	return rules
}

// Spacing mistakes common in rushed survey answers.
var spacingRules = makeRules([][2]string{
	{`할수있`, `할 수 있`},
	{`할수없`, `할 수 없`},
	{`될수있`, `될 수 있`},
	{`것같`, `것 같`},
	{`수있`, `수 있`},
	{`수없`, `수 없`},
	{`너무좋`, `너무 좋`},
	{`정말좋`, `정말 좋`},
	{`도움이됐`, `도움이 됐`},
	{`도움이될`, `도움이 될`},
	{`에대해`, `에 대해`},
	{`에대한`, `에 대한`},
})

// Frequent typos seen across past survey rounds.
var typoRules = makeRules([][2]string{
	{`좋앗`, `좋았`},
	{`같앗`, `같았`},
	{`됬`, `됐`},
	{`됏`, `됐`},
	{`햇`, `했`},
	{`업슴`, `없음`},
	{`업습`, `없습`},
	{`것갔`, `것 같`},
	{`수잇`, `수 있`},
})

// Sentence-final endings, rewritten to the report register.
// Longer patterns first so 했습니다 wins over 습니다.
var endingRules = makeRules([][2]string{
	{`했습니다\.?$`, `했음`},
	{`됐습니다\.?$`, `됐음`},
	{`였습니다\.?$`, `였음`},
	{`었습니다\.?$`, `었음`},
	{`습니다\.?$`, `음`},
	{`했어요\.?$`, `했음`},
	{`됐어요\.?$`, `됐음`},
	{`었어요\.?$`, `었음`},
	{`았어요\.?$`, `았음`},
	{`어요\.?$`, `음`},
	{`아요\.?$`, `음`},
	{`했다\.?$`, `했음`},
	{`됐다\.?$`, `됐음`},
	{`었다\.?$`, `었음`},
	{`았다\.?$`, `았음`},
	{`한다\.?$`, `함`},
	{`된다\.?$`, `됨`},
	{`해요\.?$`, `함`},
	{`돼요\.?$`, `됨`},
	{`할 수 있다\.?$`, `할 수 있음`},
	{`좋겠다\.?$`, `좋겠음`},
	{`\.$`, ``},
})

func applyRules(text string, rules []rule) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}

// IsMeaningless reports whether an answer is a placeholder with no
// reviewable content.
func IsMeaningless(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	lower := strings.ToLower(text)
	for _, p := range meaninglessPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// Clean normalizes one free-text answer: spacing and typo fixes, then
// ending unification, then whitespace collapse.
func Clean(text string) string {
	result := strings.TrimSpace(text)
	result = applyRules(result, typoRules)
	result = applyRules(result, spacingRules)
	result = applyRules(result, endingRules)
	return strings.Join(strings.Fields(result), " ")
}

// Preprocess cleans a column of free-text answers, dropping meaningless
// ones. Order is preserved.
func Preprocess(answers []string) []string {
	out := make([]string, 0, len(answers))
	for _, answer := range answers {
		if IsMeaningless(answer) {
			continue
		}
		cleaned := Clean(answer)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
