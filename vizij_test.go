package vizij

import "testing"

func TestCheckABI_MatchingVersionSucceeds(t *testing.T) {
	if err := CheckABI(ABIVersion); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckABI_MismatchedVersionErrors(t *testing.T) {
	err := CheckABI(ABIVersion + 1)
	if err == nil {
		t.Fatal("expected an error for a mismatched ABI version")
	}
}
