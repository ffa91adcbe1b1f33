package seedextend

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/yasushi-saito/zlibng"
)

// Alignment is one accepted extension result, formatted per spec.md §6:
// "alen aseq astartpos strand blen bseq bstartpos score editdist identity".
type Alignment struct {
	ALen, BLen           uint32
	ASeq, BSeq           string
	AStartPos, BStartPos uint32
	Strand               byte // 'F' or 'R'
	Score                int32
	EditDist             uint32
	Identity             float64
}

func (a Alignment) writeTo(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %s %d %c %d %s %d %d %d %.4f\n",
		a.ALen, a.ASeq, a.AStartPos, a.Strand, a.BLen, a.BSeq, a.BStartPos,
		a.Score, a.EditDist, a.Identity)
	return err
}

// outputStream is one worker's buffered, compressed alignment output,
// adapted from encoding/bgzf/writer.go's pluggable-compressor idea: that
// file wraps an io.Writer in a block-boundary-aware gzip framer so BAM
// readers can seek into it; ours only ever needs a single linear,
// ordered merge, so it drops the block/virtual-offset machinery and
// keeps just the one piece that still applies here -- writing through a
// github.com/yasushi-saito/zlibng compressor.
type outputStream struct {
	threadIndex int
	buf         bytes.Buffer
	gz          *zlibng.Writer
	w           *bufio.Writer
}

func newOutputStream(threadIndex int) (*outputStream, error) {
	s := &outputStream{threadIndex: threadIndex}
	gz, err := zlibng.NewWriter(&s.buf, zlibng.Opts{Level: 6})
	if err != nil {
		return nil, errors.Wrap(err, "seedextend: create output stream compressor")
	}
	s.gz = gz
	s.w = bufio.NewWriterSize(gz, 64*1024)
	return s, nil
}

func (s *outputStream) write(a Alignment) error {
	return a.writeTo(s.w)
}

func (s *outputStream) close() error {
	if err := s.w.Flush(); err != nil {
		return errors.Wrap(err, "seedextend: flush output stream")
	}
	return errors.Wrap(s.gz.Close(), "seedextend: close output stream compressor")
}

// mergeOutputStreams concatenates each worker's compressed buffer onto
// dst in thread-index order (§5's "merged at join time in thread-index
// order"), so output ordering is deterministic regardless of which
// worker finished first.
func mergeOutputStreams(dst io.Writer, streams []*outputStream) error {
	sort.Slice(streams, func(i, j int) bool { return streams[i].threadIndex < streams[j].threadIndex })
	for _, s := range streams {
		if _, err := dst.Write(s.buf.Bytes()); err != nil {
			return errors.Wrapf(err, "seedextend: merge output stream %d", s.threadIndex)
		}
	}
	return nil
}
