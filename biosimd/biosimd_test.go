package biosimd

import "testing"

func TestCleanASCIISeqInplace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ACGT", "ACGT"},
		{"acgt", "ACGT"},
		{"AcGtN", "ACGTN"},
		{"ACGRYSWKMBDHVN", "ACGNNNNNNNNNNN"},
		{"", ""},
	}
	for _, test := range tests {
		b := []byte(test.in)
		CleanASCIISeqInplace(b)
		if got := string(b); got != test.want {
			t.Errorf("CleanASCIISeqInplace(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
