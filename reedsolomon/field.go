// Package reedsolomon implements Reed-Solomon error correction over the small
// binary Galois fields used by two-dimensional barcodes.
package reedsolomon

import "fmt"

// Field is GF(2^n) built from a primitive polynomial. Its tables are filled
// once by NewField and only read afterwards, so a Field is safe for
// concurrent use.
type Field struct {
	exp           []int
	log           []int
	size          int
	primitive     int
	generatorBase int
	zero          *poly
	one           *poly
}

// MaxiCodeField64 is GF(64) with primitive polynomial x^6 + x + 1 and
// generator base 1, as used by MaxiCode.
var MaxiCodeField64 = NewField(0x43, 64, 1)

// NewField builds GF(size). size must be a power of two and primitive the
// field's primitive polynomial. generatorBase is the exponent of the first
// root of the code's generator polynomial (0 or 1 in practice).
func NewField(primitive, size, generatorBase int) *Field {
	f := &Field{
		exp:           make([]int, size),
		log:           make([]int, size),
		size:          size,
		primitive:     primitive,
		generatorBase: generatorBase,
	}
	x := 1
	for i := range f.exp {
		f.exp[i] = x
		x <<= 1
		if x >= size {
			x = (x ^ primitive) & (size - 1)
		}
	}
	for i := 0; i < size-1; i++ {
		f.log[f.exp[i]] = i
	}
	f.zero = &poly{field: f, coefficients: []int{0}}
	f.one = &poly{field: f, coefficients: []int{1}}
	return f
}

// Size returns the number of field elements.
func (f *Field) Size() int { return f.size }

// GeneratorBase returns the generator base.
func (f *Field) GeneratorBase() int { return f.generatorBase }

// Exp returns alpha^a.
func (f *Field) Exp(a int) int { return f.exp[a] }

// Log returns the discrete logarithm of a. a must be non-zero.
func (f *Field) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return f.log[a]
}

// Inverse returns the multiplicative inverse of a. a must be non-zero.
func (f *Field) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return f.exp[f.size-1-f.log[a]]
}

// Multiply returns a*b in the field.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(f.log[a]+f.log[b])%(f.size-1)]
}

// Add returns a+b, which in characteristic 2 is also a-b.
func Add(a, b int) int { return a ^ b }

func (f *Field) monomial(degree, coefficient int) *poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	c := make([]int, degree+1)
	c[0] = coefficient
	return &poly{field: f, coefficients: c}
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", f.primitive, f.size)
}
