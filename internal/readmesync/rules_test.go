package readmesync

import (
	"errors"
	"testing"
)

const linkRulePattern = `\]\((?!http|#)([^)\s]+)((?:\s+"[^"\n]*")?\))`

func mustRules(t *testing.T, specs ...RuleSpec) []Rule {
	t.Helper()
	rules, err := CompileRules(specs)
	if err != nil {
		t.Fatalf("CompileRules: %v", err)
	}
	return rules
}

func TestApplyRulesRewritesRelativeLinks(t *testing.T) {
	rules := mustRules(t, RuleSpec{
		Name:        "links",
		Pattern:     linkRulePattern,
		Replacement: "](https://host/%s/tree/master/$1$2",
	})

	got, err := ApplyRules("[link](relative/path)\n", "zf-hal", rules)
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	want := "[link](https://host/zf-hal/tree/master/relative/path)\n"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\ngot:  %q", want, got)
	}
}

func TestDefaultRulesRewriteNestedAndTitledLinks(t *testing.T) {
	rules, err := DefaultRules(DefaultLinkTemplate)
	if err != nil {
		t.Fatalf("DefaultRules: %v", err)
	}

	base := "https://github.com/zfcampus/zf-hal/tree/master/"
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "image inside link",
			input: "[![img](docs/a.png)](docs/b.md)\n",
			want:  "[![img](" + base + "docs/a.png)](" + base + "docs/b.md)\n",
		},
		{
			name:  "link with title",
			input: "[t](path \"title\")\n",
			want:  "[t](" + base + "path \"title\")\n",
		},
		{
			name:  "absolute link inside relative link",
			input: "[![logo](https://cdn/x.png)](img/logo.md)\n",
			want:  "[![logo](https://cdn/x.png)](" + base + "img/logo.md)\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ApplyRules(tc.input, "zf-hal", rules)
			if err != nil {
				t.Fatalf("ApplyRules: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected output\nwant: %q\ngot:  %q", tc.want, got)
			}
		})
	}
}

func TestApplyRulesKeepsAbsoluteAndAnchorLinks(t *testing.T) {
	rules, err := DefaultRules(DefaultLinkTemplate)
	if err != nil {
		t.Fatalf("DefaultRules: %v", err)
	}

	input := "See [docs](http://example.com), [secure](https://example.com) and [top](#top).\n"
	got, err := ApplyRules(input, "zf-rest", rules)
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if got != input {
		t.Fatalf("expected links untouched, got %q", got)
	}
}

func TestDefaultRulesStripBadgeLines(t *testing.T) {
	rules, err := DefaultRules(DefaultLinkTemplate)
	if err != nil {
		t.Fatalf("DefaultRules: %v", err)
	}

	input := "ZF HAL\n======\n\n" +
		"[![Build Status](https://travis-ci.org/zfcampus/zf-hal.png)](https://travis-ci.org/zfcampus/zf-hal)\n" +
		"[![Coverage Status](https://coveralls.io/repos/zfcampus/zf-hal/badge.png)](https://coveralls.io/r/zfcampus/zf-hal)\n" +
		"\nIntroduction\n------------\n\nSee [the docs](doc/book/intro.md).\n"

	got, err := ApplyRules(input, "zf-hal", rules)
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	want := "ZF HAL\n======\n\n" +
		"\nIntroduction\n------------\n\n" +
		"See [the docs](https://github.com/zfcampus/zf-hal/tree/master/doc/book/intro.md).\n"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\ngot:  %q", want, got)
	}
}

func TestBadgeRuleRemovesOnlyTheBadgeLine(t *testing.T) {
	rules := mustRules(t, DefaultRuleSpecs(DefaultLinkTemplate)[0])

	input := "first\n[![build status](x.png)](y)\nlast"
	got, err := ApplyRules(input, "zf-rpc", rules)
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if got != "first\nlast" {
		t.Fatalf("unexpected output %q", got)
	}

	trailing, err := ApplyRules("first\n[![Build Status](x.png)](y)", "zf-rpc", rules)
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if trailing != "first\n" {
		t.Fatalf("expected trailing badge to be removed, got %q", trailing)
	}
}

func TestApplyRulesRespectsDeclaredOrder(t *testing.T) {
	forward := mustRules(t,
		RuleSpec{Name: "a-to-b", Pattern: "a", Replacement: "b"},
		RuleSpec{Name: "b-to-c", Pattern: "b", Replacement: "c"},
	)
	reverse := mustRules(t,
		RuleSpec{Name: "b-to-c", Pattern: "b", Replacement: "c"},
		RuleSpec{Name: "a-to-b", Pattern: "a", Replacement: "b"},
	)

	got, err := ApplyRules("ab", "zf-hal", forward)
	if err != nil {
		t.Fatalf("ApplyRules forward: %v", err)
	}
	if got != "cc" {
		t.Fatalf("expected cc, got %q", got)
	}

	got, err = ApplyRules("ab", "zf-hal", reverse)
	if err != nil {
		t.Fatalf("ApplyRules reverse: %v", err)
	}
	if got != "bc" {
		t.Fatalf("expected bc, got %q", got)
	}
}

func TestCompileRuleRejectsMalformedPatterns(t *testing.T) {
	if _, err := CompileRule(RuleSpec{Name: "broken", Pattern: "(unclosed"}); !errors.Is(err, ErrRulePattern) {
		t.Fatalf("expected ErrRulePattern, got %v", err)
	}
	if _, err := CompileRule(RuleSpec{Name: "empty"}); !errors.Is(err, ErrRulePattern) {
		t.Fatalf("expected ErrRulePattern for empty pattern, got %v", err)
	}
	if _, err := CompileRule(RuleSpec{Name: "slots", Pattern: "x", Replacement: "%s/%s"}); !errors.Is(err, ErrTemplateSlot) {
		t.Fatalf("expected ErrTemplateSlot, got %v", err)
	}
}

func TestRuleApplyRequiresCompiledPattern(t *testing.T) {
	if _, err := (Rule{Name: "raw"}).Apply("text", "zf-hal"); !errors.Is(err, ErrRulePattern) {
		t.Fatalf("expected ErrRulePattern, got %v", err)
	}
}
