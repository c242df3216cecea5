package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "GRAD"
	FormatVersion   = 1
	FixedHeaderSize = 64   // 0x40
	HeaderAlignment = 64   // Data section starts on a 64-byte boundary
	ChecksumSize    = 32   // SHA-256 checksum size
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	ValueSize       = 8    // float64
)

// Flags for the checkpoint format.
const (
	FlagHasOptimizer uint32 = 1 << 0 // bit 0: optimizer state included
	FlagHasMetadata  uint32 = 1 << 1 // bit 1: custom metadata included
)

// Header represents the JSON header of a checkpoint file.
type Header struct {
	FormatVersion  int               `json:"format_version"`       // Version of the format
	GradVersion    string            `json:"grad_version"`         // Library version that wrote the file
	ModelType      string            `json:"model_type"`           // e.g. "MLP(2, [16, 16, 1])"
	CreatedAt      time.Time         `json:"created_at"`           // When the file was created
	Parameters     []string          `json:"parameters"`           // Parameter names in data order
	Optimizer      []string          `json:"optimizer,omitempty"`  // Optimizer state keys, after parameters
	Metadata       map[string]string `json:"metadata,omitempty"`   // Custom metadata
	CheckpointMeta *CheckpointMeta   `json:"checkpoint,omitempty"` // Training state (optional)
}

// CheckpointMeta contains training state information.
type CheckpointMeta struct {
	Step          int     `json:"step"`           // Training step number
	Loss          float64 `json:"loss"`           // Loss value at checkpoint
	Accuracy      float64 `json:"accuracy"`       // Accuracy at checkpoint
	OptimizerType string  `json:"optimizer_type"` // "SGD", "Adam", ...
}

// Checkpoint is the in-memory form of a checkpoint file.
type Checkpoint struct {
	Header         Header
	Params         map[string]float64 // Parameter name -> value
	OptimizerState map[string]float64 // Optimizer state key -> value
}
