package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := map[string]string{
		"+1 (650) 253-0000": "+16502530000",
		"650-253-0000":      "+16502530000",
		"  not a number ":   "not a number",
		"":                  "",
	}
	for in, want := range cases {
		if got := NormalizeE164(in); got != want {
			t.Fatalf("NormalizeE164(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("+44 20 7946 0958") {
		t.Fatal("expected UK number to be valid")
	}
	if IsValid("12") {
		t.Fatal("expected short number to be invalid")
	}
}
