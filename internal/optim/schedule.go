package optim

// Schedule returns the learning rate for a step.
type Schedule interface {
	LR(step int) float64
}

// Constant is a fixed learning rate.
type Constant float64

// LR returns the constant rate.
func (c Constant) LR(int) float64 {
	return float64(c)
}

// LinearDecay interpolates from Start at step 0 towards End at step Total.
//
//	lr(k) = Start - (Start - End) * k / Total
//
// Steps past Total keep returning End.
type LinearDecay struct {
	Start float64
	End   float64
	Total int
}

// LR returns the learning rate for step.
func (d LinearDecay) LR(step int) float64 {
	if d.Total <= 0 || step >= d.Total {
		return d.End
	}
	if step < 0 {
		step = 0
	}
	return d.Start - (d.Start-d.End)*float64(step)/float64(d.Total)
}
