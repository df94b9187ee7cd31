package reedsolomon

import "errors"

// ErrUncorrectable is returned when a received word holds more errors than
// its error-correction symbols can repair.
var ErrUncorrectable = errors.New("reedsolomon: too many errors")

// Decoder corrects errors in Reed-Solomon codewords. It holds no mutable
// state and may be shared between goroutines.
type Decoder struct {
	field *Field
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field *Field) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects received in place and returns the number of symbols it
// changed. The last twoS symbols of received are error-correction symbols.
// Up to twoS/2 symbol errors can be corrected.
func (d *Decoder) Decode(received []int, twoS int) (int, error) {
	f := d.field
	p := newPoly(f, received)
	syndromes := make([]int, twoS)
	clean := true
	for i := 0; i < twoS; i++ {
		eval := p.evaluateAt(f.Exp(i + f.generatorBase))
		syndromes[twoS-1-i] = eval
		if eval != 0 {
			clean = false
		}
	}
	if clean {
		return 0, nil
	}

	sigma, omega, err := d.euclidean(f.monomial(twoS, 1), newPoly(f, syndromes), twoS)
	if err != nil {
		return 0, err
	}
	locations, err := d.errorLocations(sigma)
	if err != nil {
		return 0, err
	}
	// nonzero syndromes with a constant locator
	if len(locations) == 0 {
		return 0, ErrUncorrectable
	}
	magnitudes := d.errorMagnitudes(omega, locations)
	for i, loc := range locations {
		position := len(received) - 1 - f.Log(loc)
		if position < 0 {
			return 0, ErrUncorrectable
		}
		received[position] = Add(received[position], magnitudes[i])
	}
	return len(locations), nil
}

// euclidean runs the extended Euclidean algorithm on x^R and the syndrome
// polynomial until the remainder degree drops below R/2, yielding the error
// locator sigma and error evaluator omega.
func (d *Decoder) euclidean(a, b *poly, r int) (sigma, omega *poly, err error) {
	f := d.field
	if a.degree() < b.degree() {
		a, b = b, a
	}
	rLast, rCur := a, b
	tLast, tCur := f.zero, f.one

	for 2*rCur.degree() >= r {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = rCur, tCur
		if rLast.isZero() {
			return nil, nil, ErrUncorrectable
		}
		rCur = rLastLast
		q := f.zero
		inverseLead := f.Inverse(rLast.coefficient(rLast.degree()))
		for rCur.degree() >= rLast.degree() && !rCur.isZero() {
			degreeDiff := rCur.degree() - rLast.degree()
			scale := f.Multiply(rCur.coefficient(rCur.degree()), inverseLead)
			q = q.add(f.monomial(degreeDiff, scale))
			rCur = rCur.add(rLast.multiplyByMonomial(degreeDiff, scale))
		}
		tCur = q.multiply(tLast).add(tLastLast)
		if rCur.degree() >= rLast.degree() {
			return nil, nil, ErrUncorrectable
		}
	}

	atZero := tCur.coefficient(0)
	if atZero == 0 {
		return nil, nil, ErrUncorrectable
	}
	inverse := f.Inverse(atZero)
	return tCur.scale(inverse), rCur.scale(inverse), nil
}

// errorLocations finds the roots of the locator by exhaustive search (Chien
// search) and returns their inverses.
func (d *Decoder) errorLocations(locator *poly) ([]int, error) {
	n := locator.degree()
	if n == 1 {
		return []int{locator.coefficient(1)}, nil
	}
	result := make([]int, 0, n)
	for i := 1; i < d.field.size && len(result) < n; i++ {
		if locator.evaluateAt(i) == 0 {
			result = append(result, d.field.Inverse(i))
		}
	}
	if len(result) != n {
		return nil, ErrUncorrectable
	}
	return result, nil
}

// errorMagnitudes applies Forney's formula.
func (d *Decoder) errorMagnitudes(evaluator *poly, locations []int) []int {
	f := d.field
	result := make([]int, len(locations))
	for i, loc := range locations {
		xiInverse := f.Inverse(loc)
		denominator := 1
		for j, other := range locations {
			if i != j {
				denominator = f.Multiply(denominator, Add(1, f.Multiply(other, xiInverse)))
			}
		}
		result[i] = f.Multiply(evaluator.evaluateAt(xiInverse), f.Inverse(denominator))
		if f.generatorBase != 0 {
			result[i] = f.Multiply(result[i], xiInverse)
		}
	}
	return result
}
