package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"
)

const gradVersion = "0.1.0" // Current library version

// Write encodes ckpt to w.
//
// Entries are written in sorted name order; ckpt.Header's Parameters,
// Optimizer, FormatVersion and GradVersion are filled in by Write.
// CreatedAt defaults to the current time.
func Write(w io.Writer, ckpt *Checkpoint) error {
	header := ckpt.Header
	header.FormatVersion = FormatVersion
	header.GradVersion = gradVersion
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	header.Parameters = slices.Sorted(maps.Keys(ckpt.Params))
	header.Optimizer = slices.Sorted(maps.Keys(ckpt.OptimizerState))

	// Data section
	var data bytes.Buffer
	data.Grow((len(header.Parameters) + len(header.Optimizer)) * ValueSize)
	for _, name := range header.Parameters {
		writeFloat(&data, ckpt.Params[name])
	}
	for _, name := range header.Optimizer {
		writeFloat(&data, ckpt.OptimizerState[name])
	}

	if err := ValidateHeader(&header, uint64(data.Len())); err != nil {
		return errors.Wrap(err, "invalid checkpoint")
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	flags := uint32(0)
	if len(header.Optimizer) > 0 {
		flags |= FlagHasOptimizer
	}
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	// Fixed header
	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(data.Len()))
	checksum := ComputeChecksum(data.Bytes())
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.Write(fixed); err != nil {
		return errors.Wrap(err, "failed to write fixed header")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := w.Write(make([]byte, padding(len(headerJSON)))); err != nil {
		return errors.Wrap(err, "failed to write padding")
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write data")
	}
	return nil
}

// Save writes ckpt to path, replacing any existing file.
func Save(path string, ckpt *Checkpoint) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	if err := Write(f, ckpt); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close file")
}

func writeFloat(buf *bytes.Buffer, v float64) {
	var b [ValueSize]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

// padding returns the zero bytes needed after a header of headerSize bytes.
func padding(headerSize int) int {
	pos := FixedHeaderSize + headerSize
	return (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment
}
