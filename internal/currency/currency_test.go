package currency

import "testing"

func TestPKR(t *testing.T) {
	cases := map[float64]string{
		0:       "PKR 0",
		3500:    "PKR 3,500",
		1200:    "PKR 1,200",
		999:     "PKR 999",
		1234567: "PKR 1,234,567",
	}
	for amount, want := range cases {
		if got := PKR(amount); got != want {
			t.Fatalf("PKR(%v) = %q, want %q", amount, got, want)
		}
	}
}

func TestPKRDropsDecimals(t *testing.T) {
	if got := PKR(1200.25); got != "PKR 1,200" {
		t.Fatalf("expected decimals dropped, got %q", got)
	}
}
