package password

import (
	"errors"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("hunter2hunter2")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := Verify(hash, "hunter2hunter2"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := Verify(hash, "otra-cosa"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("err = %v, want ErrMismatch", err)
	}
}

func TestPolicyValidate(t *testing.T) {
	cases := []struct {
		in     string
		ok     bool
		reason string
	}{
		{"hunter2hunter2", true, ""},
		{"short", false, "too_short"},
		{"123456789", false, "numeric_only"},
		{"Password1!", true, ""},
		{"iloveyou", false, "too_common"},
	}
	for _, tc := range cases {
		ok, reasons := DefaultPolicy.Validate(tc.in)
		if ok != tc.ok {
			t.Errorf("Validate(%q) ok = %v, want %v (reasons %v)", tc.in, ok, tc.ok, reasons)
		}
		if !tc.ok && len(reasons) == 0 {
			t.Errorf("Validate(%q) expected reasons", tc.in)
		}
		if tc.reason != "" && !contains(reasons, tc.reason) {
			t.Errorf("Validate(%q) reasons = %v, want %q", tc.in, reasons, tc.reason)
		}
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
