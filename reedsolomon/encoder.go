package reedsolomon

import "sync"

// Encoder computes systematic Reed-Solomon error-correction symbols.
// Generator polynomials are cached; the cache is guarded so an Encoder may
// be shared.
type Encoder struct {
	field *Field

	mu         sync.Mutex
	generators []*poly
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(field *Field) *Encoder {
	return &Encoder{
		field:      field,
		generators: []*poly{field.one},
	}
}

func (e *Encoder) generator(degree int) *poly {
	e.mu.Lock()
	defer e.mu.Unlock()
	for d := len(e.generators); d <= degree; d++ {
		last := e.generators[d-1]
		next := last.multiply(newPoly(e.field, []int{1, e.field.Exp(d - 1 + e.field.generatorBase)}))
		e.generators = append(e.generators, next)
	}
	return e.generators[degree]
}

// Encode fills the last ecSymbols entries of toEncode with error-correction
// symbols for the data held in the leading entries.
func (e *Encoder) Encode(toEncode []int, ecSymbols int) {
	if ecSymbols == 0 {
		panic("reedsolomon: no error correction symbols")
	}
	dataSymbols := len(toEncode) - ecSymbols
	if dataSymbols <= 0 {
		panic("reedsolomon: no data symbols provided")
	}
	info := newPoly(e.field, toEncode[:dataSymbols]).multiplyByMonomial(ecSymbols, 1)
	_, remainder := info.divide(e.generator(ecSymbols))
	coefficients := remainder.coefficients
	numZero := ecSymbols - len(coefficients)
	for i := 0; i < numZero; i++ {
		toEncode[dataSymbols+i] = 0
	}
	copy(toEncode[dataSymbols+numZero:], coefficients)
}
