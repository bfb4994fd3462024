package catalog

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ugorji/go/codec"

	"github.com/go-succinct/wavelet"
)

// Snapshots frame a structure's opaque binary form together with its
// variant identity in a zstd stream, so a reader can restore it
// through the catalog without out-of-band knowledge.

const snapshotMagic = "wvsnap1"

// WriteSnapshot serializes seq, identified by (family, backend), into w.
func WriteSnapshot(w io.Writer, family, backend string, seq wavelet.Sequence) error {
	payload, err := seq.MarshalBinary()
	if err != nil {
		return err
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	var bh codec.MsgpackHandle
	enc := codec.NewEncoder(zw, &bh)
	for _, field := range []interface{}{snapshotMagic, family, backend, payload} {
		if err := enc.Encode(field); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// ReadSnapshot restores a structure from r using the registry's
// variant identity; it returns the structure and the catalog entry it
// was restored through.
func ReadSnapshot(r io.Reader, reg *Registry) (wavelet.Sequence, Entry, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, Entry{}, err
	}
	defer zr.Close()
	var bh codec.MsgpackHandle
	dec := codec.NewDecoder(zr, &bh)
	var magic, family, backend string
	if err := dec.Decode(&magic); err != nil {
		return nil, Entry{}, fmt.Errorf("%w: snapshot header: %v", wavelet.ErrCorrupt, err)
	}
	if magic != snapshotMagic {
		return nil, Entry{}, fmt.Errorf("%w: not a snapshot", wavelet.ErrCorrupt)
	}
	if err := dec.Decode(&family); err != nil {
		return nil, Entry{}, fmt.Errorf("%w: snapshot family: %v", wavelet.ErrCorrupt, err)
	}
	if err := dec.Decode(&backend); err != nil {
		return nil, Entry{}, fmt.Errorf("%w: snapshot backend: %v", wavelet.ErrCorrupt, err)
	}
	var payload []byte
	if err := dec.Decode(&payload); err != nil {
		return nil, Entry{}, fmt.Errorf("%w: snapshot payload: %v", wavelet.ErrCorrupt, err)
	}
	entry, err := reg.Lookup(family, backend)
	if err != nil {
		return nil, Entry{}, err
	}
	seq, err := entry.Restore(payload)
	if err != nil {
		return nil, Entry{}, err
	}
	return seq, entry, nil
}
