package repo

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/oops/pkg/object"
)

// bundleMagic is the first line of a bundle stream, after decompression.
const bundleMagic = "OOPSBUNDLE 1"

// WriteBundle exports every object and every ref as a single
// zstd-compressed stream:
//
//	OOPSBUNDLE 1
//	<ref count>
//	<name> <hash>        (one per ref)
//	<object count>
//	<hash> <length>      (framing line, then length raw bytes, per object)
func (r *Repository) WriteBundle(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	bw := bufio.NewWriter(enc)

	refs, err := r.ListRefs()
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	hashes, err := r.Store.List()
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}

	fmt.Fprintf(bw, "%s\n", bundleMagic)

	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(bw, "%d\n", len(names))
	for _, name := range names {
		fmt.Fprintf(bw, "%s %s\n", name, refs[name])
	}

	fmt.Fprintf(bw, "%d\n", len(hashes))
	for _, h := range hashes {
		data, err := r.Store.Read(h)
		if err != nil {
			return fmt.Errorf("bundle: %w", err)
		}
		fmt.Fprintf(bw, "%s %d\n", h, len(data))
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("bundle: write object %s: %w", h, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("bundle: flush: %w", err)
	}
	return enc.Close()
}

// ReadBundle imports objects and refs from a bundle stream. Object content
// is re-hashed on write, so a corrupted entry whose bytes no longer match
// its framing hash is rejected. Returns the number of objects imported.
func (r *Repository) ReadBundle(src io.Reader) (int, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return 0, fmt.Errorf("unbundle: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	magic, err := readBundleLine(br)
	if err != nil {
		return 0, fmt.Errorf("unbundle: %w", err)
	}
	if magic != bundleMagic {
		return 0, fmt.Errorf("unbundle: bad magic %q", magic)
	}

	refCount, err := readBundleCount(br)
	if err != nil {
		return 0, fmt.Errorf("unbundle: ref count: %w", err)
	}
	type refPair struct {
		name string
		hash object.Hash
	}
	refs := make([]refPair, 0, refCount)
	for i := 0; i < refCount; i++ {
		line, err := readBundleLine(br)
		if err != nil {
			return 0, fmt.Errorf("unbundle: ref %d: %w", i, err)
		}
		name, hash, ok := strings.Cut(line, " ")
		if !ok {
			return 0, fmt.Errorf("unbundle: malformed ref line %q", line)
		}
		refs = append(refs, refPair{name: name, hash: object.Hash(hash)})
	}

	objCount, err := readBundleCount(br)
	if err != nil {
		return 0, fmt.Errorf("unbundle: object count: %w", err)
	}
	imported := 0
	for i := 0; i < objCount; i++ {
		line, err := readBundleLine(br)
		if err != nil {
			return 0, fmt.Errorf("unbundle: object %d: %w", i, err)
		}
		hashStr, lenStr, ok := strings.Cut(line, " ")
		if !ok {
			return 0, fmt.Errorf("unbundle: malformed object line %q", line)
		}
		length, err := strconv.Atoi(lenStr)
		if err != nil || length < 0 {
			return 0, fmt.Errorf("unbundle: bad object length %q", lenStr)
		}

		data := make([]byte, length)
		if _, err := io.ReadFull(br, data); err != nil {
			return 0, fmt.Errorf("unbundle: object %s: %w", hashStr, err)
		}

		h, err := r.Store.Write(data)
		if err != nil {
			return 0, fmt.Errorf("unbundle: %w", err)
		}
		if string(h) != hashStr {
			return 0, fmt.Errorf("unbundle: object %s: content hashes to %s", hashStr, h)
		}
		imported++
	}

	// Refs land after their objects so a ref never points at a missing
	// commit mid-import.
	for _, ref := range refs {
		if err := r.WriteRef(ref.name, ref.hash); err != nil {
			return 0, fmt.Errorf("unbundle: %w", err)
		}
	}

	return imported, nil
}

func readBundleLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func readBundleCount(br *bufio.Reader) (int, error) {
	line, err := readBundleLine(br)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad count %q", line)
	}
	return n, nil
}
