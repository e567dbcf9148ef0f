package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
)

// ValidValues returns a complete submission that passes validation: two days
// and 500 km at 20000 per day and 50 per km, total 65000.
func ValidValues() contract.Values {
	return contract.Values{
		contract.FieldLastName:         "Diop",
		contract.FieldFirstName:        "Awa",
		contract.FieldContactInfo:      "+221 77 000 00 00",
		contract.FieldBirthDate:        "1990-05-17",
		contract.FieldBirthPlace:       "Thiès",
		contract.FieldAddress:          "12 rue Carnot, Dakar",
		contract.FieldOccupation:       "Ingénieure",
		contract.FieldNationalIDNumber: "1 234 1990 00123",
		contract.FieldLicenseNumber:    "SN-DK-778899",
		contract.FieldPlateNumber:      "DK-1234-AB",
		contract.FieldVehicleMake:      "Toyota",
		contract.FieldVehicleType:      "SUV",
		contract.FieldDepartureDate:    "2024-01-01",
		contract.FieldDepartureTime:    "10:00",
		contract.FieldReturnDate:       "2024-01-02",
		contract.FieldReturnTime:       "14:00",
		contract.FieldDeliveryLocation: "Aéroport AIBD",
		contract.FieldPickupLocation:   "Agence Plateau",
		contract.FieldDestination:      "Saint-Louis",
		contract.FieldStartOdometer:    "1000",
		contract.FieldEndOdometer:      "1500",
		contract.FieldDailyRate:        "20000",
		contract.FieldPerKmRate:        "50",
		contract.FieldPaymentMethod:    string(contract.PaymentWave),
		contract.FieldNetPayable:       "65000",
		contract.FieldDeposit:          "100000",
		contract.FieldFuelType:         string(contract.FuelDiesel),
	}
}

// ValidValuesWith returns ValidValues with overrides applied. An empty
// override clears the field.
func ValidValuesWith(overrides map[string]string) contract.Values {
	values := ValidValues()
	for key, value := range overrides {
		if value == "" {
			delete(values, key)
			continue
		}
		values[key] = value
	}
	return values
}

// MustRecord parses values into a record, failing the test when they are
// incomplete. Cross-field rules are not checked.
func MustRecord(t testing.TB, values contract.Values) contract.Record {
	t.Helper()

	input, errs := contract.Parse(values)
	if len(errs) > 0 {
		t.Fatalf("parse values: %v", errs)
	}
	record, err := input.Record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return record
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
