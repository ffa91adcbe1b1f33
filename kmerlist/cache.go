package kmerlist

import (
	"encoding/binary"
	"fmt"
	"hash"
	"os"

	"blainsmith.com/go/seahash"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/jianlian92/genometools/kmerenum"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// recordSize is sizeof(code uint64, endpos uint32, seqnum uint32) in the
// on-disk cache, per spec.md §6's "raw little-endian-agnostic dump of
// (code, endpos, seqnum) records". The record order differs from KmerPos's
// field order (Code, SeqNum, EndPos), so ReadCache decodes each record
// field by field.
const recordSize = 16

// CacheName builds the literal cache filename spec.md §4.6 requires:
// "{basename}.{k}{f|r}{npartitions}-{partindex}.kmer".
func CacheName(basename string, k int, complement bool, npartitions, partindex int) string {
	dir := "f"
	if complement {
		dir = "r"
	}
	return fmt.Sprintf("%s.%d%s%d-%d.kmer", basename, k, dir, npartitions, partindex)
}

// fingerprint derives a cheap farmhash-based tag of the cache's identifying
// parameters (basename, k, direction, partitioning), stored in the file
// header and checked on read. It exists to catch the case where a stale
// cache file with the right name but different run parameters gets reused
// by accident -- the same role fusion/kmer_index.go's hashKmer plays when
// picking a kmer's shard, repurposed here as a pure validation fingerprint
// rather than a bucket index.
func fingerprint(basename string, k int, complement bool, npartitions, partindex int) uint64 {
	tag := CacheName(basename, k, complement, npartitions, partindex)
	return farm.Hash64WithSeed([]byte(tag), uint64(recordSize))
}

// WriteCache dumps list's entries to path in the raw on-disk format
// described in spec.md §6, trailed by a seahash checksum over the header
// and body so readers can detect truncation or corruption.
func WriteCache(path, basename string, k int, complement bool, npartitions, partindex int, list *List) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "kmerlist: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "kmerlist: close %s", path)
		}
	}()

	h := seahash.New()
	w := &checksummingWriter{f: f, h: h}

	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], fingerprint(basename, k, complement, npartitions, partindex))
	if err := w.write(hdr[:]); err != nil {
		return errors.Wrapf(err, "kmerlist: write header %s", path)
	}

	var rec [recordSize]byte
	for _, e := range list.Entries() {
		binary.LittleEndian.PutUint64(rec[0:8], e.Code)
		binary.LittleEndian.PutUint32(rec[8:12], e.EndPos)
		binary.LittleEndian.PutUint32(rec[12:16], e.SeqNum)
		if err := w.write(rec[:]); err != nil {
			return errors.Wrapf(err, "kmerlist: write record %s", path)
		}
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint64(trailer[:], h.Sum64())
	if _, err := f.Write(trailer[:]); err != nil {
		return errors.Wrapf(err, "kmerlist: write trailer %s", path)
	}
	return nil
}

type checksummingWriter struct {
	f *os.File
	h hash.Hash64
}

func (w *checksummingWriter) write(b []byte) error {
	if _, err := w.f.Write(b); err != nil {
		return err
	}
	w.h.Write(b)
	return nil
}

// ReadCache mmaps path (following fusion/kmer_index.go's use of
// golang.org/x/sys/unix for large flat tables), validates the fingerprint
// and trailer checksum, copies every record into a new in-memory List and
// unmaps the file before returning.
func ReadCache(path, basename string, k int, complement bool, npartitions, partindex int) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "kmerlist: open %s", path)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "kmerlist: stat %s", path)
	}
	size := st.Size()
	if size < 8+8 {
		return nil, errors.Errorf("kmerlist: %s too small to be a cache file (%d bytes)", path, size)
	}
	if (size-16)%recordSize != 0 {
		return nil, errors.Errorf("kmerlist: %s has a size not aligned to record boundaries", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "kmerlist: mmap %s", path)
	}

	wantFP := fingerprint(basename, k, complement, npartitions, partindex)
	gotFP := binary.LittleEndian.Uint64(data[:8])
	if gotFP != wantFP {
		unix.Munmap(data)
		return nil, errors.Errorf("kmerlist: %s fingerprint mismatch (stale cache for different parameters?)", path)
	}

	body := data[8 : size-8]
	trailer := binary.LittleEndian.Uint64(data[size-8:])
	h := seahash.New()
	h.Write(data[:8])
	h.Write(body)
	if h.Sum64() != trailer {
		unix.Munmap(data)
		return nil, errors.Errorf("kmerlist: %s failed checksum verification (truncated or corrupt)", path)
	}

	n := len(body) / recordSize
	entries := make([]kmerenum.KmerPos, n)
	for i := 0; i < n; i++ {
		r := body[i*recordSize : (i+1)*recordSize]
		entries[i] = kmerenum.KmerPos{
			Code:   binary.LittleEndian.Uint64(r[0:8]),
			EndPos: binary.LittleEndian.Uint32(r[8:12]),
			SeqNum: binary.LittleEndian.Uint32(r[12:16]),
		}
	}
	if err := unix.Munmap(data); err != nil {
		log.Printf("kmerlist: munmap %s: %v (entries already copied out)", path, err)
	}
	return NewList(entries), nil
}
