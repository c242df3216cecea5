package nn

import (
	"github.com/pkg/errors"
)

// ErrUnknownParameter is returned when a state dict names a parameter the module lacks.
var ErrUnknownParameter = errors.New("unknown parameter")

// StateDict returns the current value of every parameter of m, keyed by name.
func StateDict(m Module) map[string]float64 {
	params := m.Parameters()
	state := make(map[string]float64, len(params))
	for _, p := range params {
		state[p.Name()] = p.Data()
	}
	return state
}

// LoadStateDict copies values from state into the parameters of m.
//
// Every parameter of m must be present and state must not contain extra names.
// Nothing is modified when an error is returned.
func LoadStateDict(m Module, state map[string]float64) error {
	params := m.Parameters()
	byName := make(map[string]*Parameter, len(params))
	for _, p := range params {
		byName[p.Name()] = p
	}

	for name := range state {
		if _, ok := byName[name]; !ok {
			return errors.Wrapf(ErrUnknownParameter, "load state dict: %q", name)
		}
	}
	for _, p := range params {
		if _, ok := state[p.Name()]; !ok {
			return errors.Errorf("load state dict: missing parameter %q", p.Name())
		}
	}

	for _, p := range params {
		p.SetData(state[p.Name()])
	}
	return nil
}
