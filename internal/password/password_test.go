package password

import "testing"

func TestAssembleConcatenatesVerbatim(t *testing.T) {
	t.Parallel()

	cases := []struct {
		lyrics string
		suffix string
	}{
		{"Lalala", "X123"},
		{"HelloWorld", ""},
		{"Grüße", " with spaces "},
		{"", "suffix"},
	}

	for _, tc := range cases {
		got := Assemble(tc.lyrics, tc.suffix)
		if got != tc.lyrics+tc.suffix {
			t.Errorf("expected %q, got %q", tc.lyrics+tc.suffix, got)
		}
		if len(got) != len(tc.lyrics)+len(tc.suffix) {
			t.Errorf("expected length %d, got %d", len(tc.lyrics)+len(tc.suffix), len(got))
		}
	}
}

func TestNewRandomIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	first := NewRandom(42)
	second := NewRandom(42)

	for i := 0; i < 10; i++ {
		a, b := first.Intn(1000), second.Intn(1000)
		if a != b {
			t.Fatalf("expected identical sequences for the same seed, got %d and %d at step %d", a, b, i)
		}
	}
}
