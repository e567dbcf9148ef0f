package locale

import (
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
)

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestDate(t *testing.T) {
	f := New("")
	cases := map[time.Time]string{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC):   "01 janvier 2024",
		time.Date(1990, 8, 17, 0, 0, 0, 0, time.UTC):  "17 août 1990",
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC): "31 décembre 2023",
	}
	for in, want := range cases {
		if got := f.Date(in); got != want {
			t.Errorf("Date(%v) = %q, want %q", in, got, want)
		}
	}
	if got := f.Date(time.Time{}); got != Unspecified {
		t.Errorf("zero date = %q", got)
	}
}

func TestTime(t *testing.T) {
	if got := New("").Time(contract.Clock{Hour: 9, Minute: 5}); got != "09:05" {
		t.Fatalf("Time = %q", got)
	}
}

func TestAmount(t *testing.T) {
	f := New("")
	got := f.Amount(65000)
	if stripSpaces(got) != "65000€" {
		t.Fatalf("Amount(65000) = %q", got)
	}
	if strings.ContainsRune(got, '\u202f') {
		t.Fatalf("narrow no-break space not normalised: %q", got)
	}
	if got := stripSpaces(f.Number(12.5)); got != "12,5" {
		t.Fatalf("Number(12.5) = %q", got)
	}
	if got := stripSpaces(New("FCFA").Amount(-250)); got != "-250FCFA" {
		t.Fatalf("negative amount = %q", got)
	}
}

func TestDefaultCurrency(t *testing.T) {
	if got := New("  ").Currency(); got != DefaultCurrency {
		t.Fatalf("currency = %q", got)
	}
}

func TestOrUnspecified(t *testing.T) {
	if got := OrUnspecified(" "); got != Unspecified {
		t.Fatalf("blank = %q", got)
	}
	if got := OrUnspecified("Moussa"); got != "Moussa" {
		t.Fatalf("value = %q", got)
	}
}
