package biosimd

import "testing"

func TestReverseComp8Inplace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ACGT", "ACGT"},
		{"AACCGGTT", "AACCGGTT"},
		{"GATTACA", "TGTAATC"},
		{"acgtACGT", "ACGTACGT"},
		{"ACGTN", "NACGT"},
		{"A", "T"},
		{"", ""},
	}
	for _, test := range tests {
		b := []byte(test.in)
		ReverseComp8Inplace(b)
		if got := string(b); got != test.want {
			t.Errorf("ReverseComp8Inplace(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestReverseComp8InplaceIsInvolution(t *testing.T) {
	s := "ACGTACGTTGCATGCATGCATGCATGCATGC"
	b := []byte(s)
	ReverseComp8Inplace(b)
	ReverseComp8Inplace(b)
	if got := string(b); got != s {
		t.Errorf("double ReverseComp8Inplace = %q, want original %q", got, s)
	}
}
