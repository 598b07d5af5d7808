package fingerprint

import "testing"

func digitsOf(n uint64) [10]int {
	var d [10]int
	if n == 0 {
		d[0] = 1
		return d
	}
	for n > 0 {
		d[n%10]++
		n /= 10
	}
	return d
}

func TestFromWideMatchesDigitCounts(t *testing.T) {
	tests := []uint64{0, 7, 10, 1260, 999999, 123456789}
	for _, v := range tests {
		f := FromWide(v)
		want := digitsOf(v)
		for digit := 1; digit <= 9; digit++ {
			got := (uint64(f) >> (7 * uint(digit-1))) & 0x7f
			if int(got) != want[digit] {
				t.Errorf("FromWide(%d) digit %d count = %d, want %d", v, digit, got, want[digit])
			}
		}
	}
}

func TestFingerprintAdditivity(t *testing.T) {
	// For fangs a, b with b occupying lenB decimal digits, compose(a,b) =
	// a*10^lenB + b should have F(a) + F(b) == F(compose(a,b)), since
	// fingerprinting is a sum over the concatenated digit multiset.
	cases := []struct {
		a, b uint64
	}{
		{21, 60},
		{15, 93},
		{35, 41},
		{0, 0},
		{999, 1},
	}
	for _, c := range cases {
		lenB := 1
		for p := uint64(10); p <= c.b; p *= 10 {
			lenB++
		}
		if c.b == 0 {
			lenB = 1
		}
		composed := c.a
		for i := 0; i < lenB; i++ {
			composed *= 10
		}
		composed += c.b

		got := FromWide(c.a) + FromWide(c.b)
		want := FromWide(composed)
		if got != want {
			t.Errorf("F(%d)+F(%d) = %d, want F(%d) = %d", c.a, c.b, got, composed, want)
		}
	}
}

func TestFromNarrowAdditivity(t *testing.T) {
	got := FromNarrow(21) + FromNarrow(60)
	want := FromNarrow(2160)
	if got != want {
		t.Errorf("narrow additivity: got %d want %d", got, want)
	}
}

func TestSaturationWithinOperatingRange(t *testing.T) {
	// No value up to 20 decimal digits repeats a single nonzero digit
	// more than 20 times, far below Wide's 127-per-field ceiling; no value
	// up to 10 digits repeats one more than 10 times, within Narrow's
	// 10-per-field ceiling.
	if SaturatedWide(11111111111111111111) {
		t.Error("SaturatedWide should not saturate within the 20-digit operating range")
	}
	if SaturatedNarrow(1111111111) {
		t.Error("SaturatedNarrow should not saturate within the 10-digit operating range")
	}
}
