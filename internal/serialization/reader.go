package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Read decodes a checkpoint from r, verifying magic, version, header and checksum.
func Read(r io.Reader) (*Checkpoint, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, errors.Wrap(err, "failed to read fixed header")
	}

	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	var stored [ChecksumSize]byte
	copy(stored[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	if dataSize > MaxEntryCount*ValueSize || dataSize%ValueSize != 0 {
		return nil, errors.Wrapf(ErrSizeMismatch, "data size %d", dataSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, errors.Wrap(err, "failed to parse header JSON")
	}
	if err := ValidateHeader(&header, dataSize); err != nil {
		return nil, errors.Wrap(err, "invalid checkpoint")
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if _, err := io.CopyN(io.Discard, r, int64(padding(int(headerSize)))); err != nil {
		return nil, errors.Wrap(err, "failed to skip padding")
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "failed to read data")
	}
	if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
		return nil, err
	}

	ckpt := &Checkpoint{
		Header:         header,
		Params:         make(map[string]float64, len(header.Parameters)),
		OptimizerState: make(map[string]float64, len(header.Optimizer)),
	}
	rd := bytes.NewReader(data)
	for _, name := range header.Parameters {
		ckpt.Params[name] = readFloat(rd)
	}
	for _, name := range header.Optimizer {
		ckpt.OptimizerState[name] = readFloat(rd)
	}
	return ckpt, nil
}

// Load reads a checkpoint from path.
func Load(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	ckpt, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return ckpt, nil
}

// readFloat decodes one value; the caller has checked the length.
func readFloat(r *bytes.Reader) float64 {
	var b [ValueSize]byte
	_, _ = io.ReadFull(r, b[:])
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:]))
}
