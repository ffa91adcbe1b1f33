package seq

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"

	"github.com/jianlian92/genometools/biosimd"
)

// mib and bufferInitSize mirror encoding/fasta/fasta.go's scanner sizing:
// some reference fasta records (whole chromosomes) have single lines far
// longer than bufio.Scanner's 64KB default.
const (
	mib            = 1024 * 1024
	bufferInitSize = 300 * mib
)

// LoadFasta reads a FASTA file at path into a TwoBit, using
// github.com/grailbio/base/file so the path may be local or a supported
// cloud URL, following fusion.GeneDB.ReadTranscriptome's ctx-scoped
// file.Open/Close pattern. Sequence names are the text between '>' and the
// first space, same convention as encoding/fasta.
//
// Unlike encoding/fasta.New, which keeps every record as an ASCII string,
// LoadFasta two-bit packs every base as it's read so the resulting
// TwoBit is the compact representation the rest of the pipeline expects,
// and records one separator position between each pair of records so
// absolute positions are addressable across the whole concatenation.
func LoadFasta(ctx context.Context, path string) (tb *TwoBit, names []string, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "seq: open %s", path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "seq: close %s", path)
		}
	}()

	names, seqs, err := scanFastaRecords(in.Reader(ctx))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "seq: parse %s", path)
	}
	if len(names) == 0 {
		return nil, nil, errors.Errorf("seq: %s contains no records", path)
	}

	lengths := make([]uint64, len(seqs))
	for i, s := range seqs {
		lengths[i] = uint64(len(s))
	}
	tb = NewTwoBit(lengths)
	for i, s := range seqs {
		ascii := []byte(s)
		// Normalizes lowercase bases and folds any ambiguity code down to
		// 'N' before packing, so SetSeq's special-position bookkeeping
		// only ever has to recognize one non-ACGT byte value.
		biosimd.CleanASCIISeqInplace(ascii)
		tb.SetSeq(i, ascii)
	}
	return tb, names, nil
}

func scanFastaRecords(r io.Reader) ([]string, []string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)

	var names []string
	var name string
	var seq strings.Builder
	flush := func() error {
		if seq.Len() == 0 && name == "" {
			return nil
		}
		if name == "" {
			return errors.Errorf("malformed FASTA: sequence data before first header")
		}
		names = append(names, name)
		return nil
	}
	var seqs []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if name != "" {
				if err := flush(); err != nil {
					return nil, nil, err
				}
				seqs = append(seqs, seq.String())
				seq.Reset()
			}
			name = strings.Split(line[1:], " ")[0]
			continue
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "couldn't read FASTA data")
	}
	if err := flush(); err != nil {
		return nil, nil, err
	}
	seqs = append(seqs, seq.String())
	return names, seqs, nil
}
