package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"08:00", "8:00", "17:30", "23:59", "0:00"}
	invalid := []string{"24:00", "8:60", "8", "08-00", "", "ab:cd"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidMoney(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"90000", "90000", true},
		{"1,500", "1500", true},
		{" 535.71 ", "535.71", true},
		{"0", "0", true},
		{"-1", "0", false},
		{"abc", "0", false},
		{"", "0", false},
	}
	for _, c := range cases {
		got, ok := IsValidMoney(c.input)
		if ok != c.ok {
			t.Errorf("IsValidMoney(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if got.String() != c.want {
			t.Errorf("IsValidMoney(%q) = %s, want %s", c.input, got.String(), c.want)
		}
	}
}

func TestGovernmentNumbers(t *testing.T) {
	if !IsValidSSSNumber("44-4506057-3") {
		t.Errorf("IsValidSSSNumber rejected a valid number")
	}
	if IsValidSSSNumber("444506057") {
		t.Errorf("IsValidSSSNumber accepted an undashed number")
	}
	if !IsValidTIN("442-605-657-000") {
		t.Errorf("IsValidTIN rejected a valid number")
	}
	if IsValidTIN("442-605-657") {
		t.Errorf("IsValidTIN accepted a short number")
	}
	if !IsValidTwelveDigitNumber("820126853951") || !IsValidTwelveDigitNumber("6910-9593-0394") {
		t.Errorf("IsValidTwelveDigitNumber rejected a valid number")
	}
	if IsValidTwelveDigitNumber("1234") {
		t.Errorf("IsValidTwelveDigitNumber accepted a short number")
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"966-860-270", "0917 123 4567", "+639171234567"}
	invalid := []string{"123", "phone-number", ""}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "first_name", Message: "first_name is required"},
		{Field: "status", Message: "status is invalid"},
	}
	if got := errs.Error(); got != "first_name: first_name is required; status: status is invalid" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if len(m) != 2 || m["status"] != "status is invalid" {
		t.Errorf("ToMap() = %v", m)
	}
}

func TestParseDate(t *testing.T) {
	d1, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	d2, _ := ParseDate("2024-03-15")
	if !d1.Before(d2) {
		t.Errorf("expected %v before %v", d1, d2)
	}
	if _, err := ParseDate("03/01/2024"); err == nil {
		t.Errorf("ParseDate accepted a non ISO date")
	}
}
