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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-07-03"); !ok {
		t.Error("IsValidDate(2024-07-03) = false, want true")
	}
	for _, s := range []string{"03.07.2024", "2024-13-01", "2024-07-32", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"08:00", true},
		{"23:59", true},
		{"08:00:30", true},
		{"24:00", false},
		{"8am", false},
		{"", false},
	}
	for _, c := range cases {
		if _, got := IsValidTimeOfDay(c.input); got != c.want {
			t.Errorf("IsValidTimeOfDay(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"b ab 123", "BAB123"},
		{"B-AB-123", "BAB123"},
		{"HH XY 42", "HHXY42"},
		{"M1234", "M1234"},
	}
	for _, c := range cases {
		if got := NormalizePlate(c.input); got != c.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestIsValidPlate(t *testing.T) {
	valid := []string{"BAB123", "HHXY42", "M1"}
	invalid := []string{"", "A", "b ab 123", "ABC!123", "THISPLATEISWAYTOOLONGFORANYVEHICLE"}
	for _, p := range valid {
		if !IsValidPlate(p) {
			t.Errorf("IsValidPlate(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPlate(p) {
			t.Errorf("IsValidPlate(%q) = true, want false", p)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "end_time", Message: "end time must be after start time"},
		{Field: "date", Message: "date is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["date"] != "date is required" {
		t.Errorf("ToMap()[date] = %q", m["date"])
	}
}
