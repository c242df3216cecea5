package ops

// LeafOp marks a node with no operands: a raw input or a trainable parameter.
type LeafOp struct{}

// NewLeafOp creates a new LeafOp.
func NewLeafOp() *LeafOp {
	return &LeafOp{}
}

// Kind returns KindLeaf.
func (op *LeafOp) Kind() Kind { return KindLeaf }

// Label returns the empty label.
func (op *LeafOp) Label() string { return "" }

// Arity returns 0.
func (op *LeafOp) Arity() int { return 0 }

// Forward panics: a leaf value is supplied at construction.
func (op *LeafOp) Forward(_ []float64) float64 {
	panic("leaf: forward has no operands to evaluate")
}

// Backward is a no-op for leaves.
func (op *LeafOp) Backward(_, _ float64, _ []float64) []float64 {
	return nil
}
