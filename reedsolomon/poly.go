package reedsolomon

// poly is an immutable polynomial over a Field. Coefficients are stored from
// the highest degree down; the leading coefficient is non-zero unless the
// polynomial is the constant zero.
type poly struct {
	field        *Field
	coefficients []int
}

func newPoly(f *Field, coefficients []int) *poly {
	if len(coefficients) == 0 {
		panic("reedsolomon: empty coefficients")
	}
	lead := 0
	for lead < len(coefficients)-1 && coefficients[lead] == 0 {
		lead++
	}
	if lead == len(coefficients)-1 && coefficients[lead] == 0 {
		return f.zero
	}
	c := make([]int, len(coefficients)-lead)
	copy(c, coefficients[lead:])
	return &poly{field: f, coefficients: c}
}

func (p *poly) degree() int { return len(p.coefficients) - 1 }

func (p *poly) isZero() bool { return p.coefficients[0] == 0 }

// coefficient returns the coefficient of x^degree.
func (p *poly) coefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

func (p *poly) evaluateAt(a int) int {
	switch a {
	case 0:
		return p.coefficient(0)
	case 1:
		sum := 0
		for _, c := range p.coefficients {
			sum = Add(sum, c)
		}
		return sum
	}
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = Add(p.field.Multiply(a, result), c)
	}
	return result
}

func (p *poly) add(other *poly) *poly {
	if p.isZero() {
		return other
	}
	if other.isZero() {
		return p
	}
	small, large := p.coefficients, other.coefficients
	if len(small) > len(large) {
		small, large = large, small
	}
	sum := make([]int, len(large))
	diff := len(large) - len(small)
	copy(sum, large[:diff])
	for i := diff; i < len(large); i++ {
		sum[i] = Add(small[i-diff], large[i])
	}
	return newPoly(p.field, sum)
}

func (p *poly) multiply(other *poly) *poly {
	if p.isZero() || other.isZero() {
		return p.field.zero
	}
	product := make([]int, len(p.coefficients)+len(other.coefficients)-1)
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] = Add(product[i+j], p.field.Multiply(a, b))
		}
	}
	return newPoly(p.field, product)
}

func (p *poly) scale(scalar int) *poly {
	switch scalar {
	case 0:
		return p.field.zero
	case 1:
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newPoly(p.field, product)
}

// multiplyByMonomial returns p * coefficient * x^degree.
func (p *poly) multiplyByMonomial(degree, coefficient int) *poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return p.field.zero
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newPoly(p.field, product)
}

// divide returns the quotient and remainder of p / other.
func (p *poly) divide(other *poly) (quotient, remainder *poly) {
	if other.isZero() {
		panic("reedsolomon: divide by zero")
	}
	quotient = p.field.zero
	remainder = p
	inverseLead := p.field.Inverse(other.coefficient(other.degree()))
	for remainder.degree() >= other.degree() && !remainder.isZero() {
		degreeDiff := remainder.degree() - other.degree()
		scale := p.field.Multiply(remainder.coefficient(remainder.degree()), inverseLead)
		quotient = quotient.add(p.field.monomial(degreeDiff, scale))
		remainder = remainder.add(other.multiplyByMonomial(degreeDiff, scale))
	}
	return quotient, remainder
}
