package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := map[string]string{
		"plain   text":                                 "plain text",
		"<p>Hi <b>there</b></p><script>x()</script>":   "Hi there",
		"Fish &amp; chips<br/>daily":                   "Fish & chips daily",
		"<style>p{color:red}</style><div>styled</div>": "styled",
	}
	for in, want := range cases {
		if got := StripHTML(in); got != want {
			t.Fatalf("StripHTML(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("<p>short</p>", 10); got != "short" {
		t.Fatalf("expected short, got %q", got)
	}
	if got := Excerpt("<p>héllo wörld again</p>", 11); got != "héllo wörld..." {
		t.Fatalf("expected rune-aware cut, got %q", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("<h1>One</h1><p>two three</p>"); got != 3 {
		t.Fatalf("expected 3 words, got %d", got)
	}
}

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Déjà vu":  "Deja vu",
		"Crème":    "Creme",
		"straße":   "straße",
		"Ünïcödé!": "Unicode!",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q): expected %q, got %q", in, want, got)
		}
	}
}
