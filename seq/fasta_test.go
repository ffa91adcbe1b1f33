package seq

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
)

func TestLoadFastaPacksAndNames(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "fasta")
	defer cleanup()
	path := filepath.Join(dir, "reads.fasta")
	data := ">seq1 first read\n" + "ACGTACGT\n" + "ACGT\n" +
		">seq2\n" + "TTTTGGGG\n"
	expect.Nil(t, ioutil.WriteFile(path, []byte(data), 0644))

	tb, names, err := LoadFasta(context.Background(), path)
	expect.Nil(t, err)
	expect.EQ(t, names, []string{"seq1", "seq2"})
	expect.EQ(t, tb.NumSequences(), 2)
	expect.EQ(t, tb.SeqLength(0), uint64(12))
	expect.EQ(t, tb.SeqLength(1), uint64(8))

	ch, ok := tb.CharAt(tb.SeqStart(1), Forward)
	expect.True(t, ok)
	expect.EQ(t, ch, byte('T'))
}

func TestLoadFastaLowercaseAndAmbiguityCode(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "fasta")
	defer cleanup()
	path := filepath.Join(dir, "mixed.fasta")
	expect.Nil(t, ioutil.WriteFile(path, []byte(">seq1\nacgtNacgt\n"), 0644))

	tb, _, err := LoadFasta(context.Background(), path)
	expect.Nil(t, err)

	ch, ok := tb.CharAt(0, Forward)
	expect.True(t, ok)
	expect.EQ(t, ch, byte('A'))
	expect.True(t, tb.IsSeparator(4))
}

func TestLoadFastaMissingFileErrors(t *testing.T) {
	_, _, err := LoadFasta(context.Background(), "/nonexistent/path.fasta")
	expect.NotNil(t, err)
}

func TestLoadFastaEmptyFileErrors(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "fasta")
	defer cleanup()
	path := filepath.Join(dir, "empty.fasta")
	expect.Nil(t, ioutil.WriteFile(path, nil, 0644))

	_, _, err := LoadFasta(context.Background(), path)
	expect.NotNil(t, err)
}
