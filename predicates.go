package affine

// IsNaN 是否为 NaN
func (z *Form) IsNaN() bool { return z.state == nan }

// IsInf 是否为 Inf
func (z *Form) IsInf() bool { return z.state == inf }

// IsZero 是否精确为 0
func (z *Form) IsZero() bool {
	return z.state == finite && z.centre.Sign() == 0 && len(z.terms) == 0
}

// HasZero 值域是否包含 0
func (z *Form) HasZero() bool {
	switch z.state {
	case nan:
		return false
	case inf:
		return true
	}
	return z.lo.Sign() <= 0 && z.hi.Sign() >= 0
}

// HasPos 值域是否包含正数
func (z *Form) HasPos() bool {
	switch z.state {
	case nan:
		return false
	case inf:
		return true
	}
	return z.hi.Sign() > 0
}

// HasNeg 值域是否包含负数
func (z *Form) HasNeg() bool {
	switch z.state {
	case nan:
		return false
	case inf:
		return true
	}
	return z.lo.Sign() < 0
}

// IsBounded 值域是否有界
func (z *Form) IsBounded() bool {
	return z.state == finite && !z.lo.IsInf() && !z.hi.IsInf()
}
