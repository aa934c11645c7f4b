package validate

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	valid := []string{"Noa Levi", "Jean-Luc", "O'Brien", "Kid 2"}
	for _, v := range valid {
		if err := Name(v); err != nil {
			t.Errorf("Name(%q): unexpected error %v", v, err)
		}
	}
	invalid := []string{"", strings.Repeat("a", 81), "semi;colon", "tab\tname"}
	for _, v := range invalid {
		if err := Name(v); err == nil {
			t.Errorf("Name(%q): expected error", v)
		}
	}
}

func TestEmail(t *testing.T) {
	if err := Email("rina@example.test"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, v := range []string{"", "not-an-email", "a@b", "has space@example.test"} {
		if err := Email(v); err == nil {
			t.Errorf("Email(%q): expected error", v)
		}
	}
}

func TestOptionalEmail(t *testing.T) {
	if err := OptionalEmail(""); err != nil {
		t.Errorf("empty optional email should pass, got %v", err)
	}
	if err := OptionalEmail("bad"); err == nil {
		t.Errorf("expected error for malformed optional email")
	}
}

func TestAge(t *testing.T) {
	for _, v := range []int{0, 5, 21} {
		if err := Age(v); err != nil {
			t.Errorf("Age(%d): unexpected error %v", v, err)
		}
	}
	for _, v := range []int{-1, 22, 100} {
		if err := Age(v); err == nil {
			t.Errorf("Age(%d): expected error", v)
		}
	}
}

func TestMaxLen(t *testing.T) {
	long := strings.Repeat("x", 501)
	if err := MaxLen("notes", &long, 500); err == nil {
		t.Errorf("expected error for overlong value")
	}
	if err := MaxLen("notes", nil, 500); err != nil {
		t.Errorf("nil value should pass, got %v", err)
	}
}
