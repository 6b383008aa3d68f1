package jsonbind

import (
	"errors"
	"reflect"
	"strconv"
)

// Integer is the set of native integer types the C3 integer primitive
// parser can target.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of native floating-point types the C3 floating point
// primitive parser can target.
type Float interface {
	~float32 | ~float64
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// numberToken is the result of locating a numeric literal without
// materializing its value: the raw bytes, and whether a '.' or exponent
// makes it a floating-point literal.
type numberToken struct {
	start, end int
	isFloat    bool
}

// scanNumberToken implements the "locate-end" half of C3/C4: it advances
// the cursor past a JSON number without interpreting it, and reports the
// byte range plus whether it is a float literal. Shared by ParseInt,
// ParseFloat, and the structural skipper.
func scanNumberToken(c *Cursor) (numberToken, error) {
	start := c.pos
	n := len(c.data)
	pos := start

	if pos < n && c.data[pos] == '-' {
		pos++
	}

	digitsStart := pos
	for pos < n && isDigit(c.data[pos]) {
		pos++
	}
	if pos == digitsStart {
		return numberToken{}, newError(InvalidNumber, start)
	}
	if c.policy.Checked() && pos-digitsStart > 1 && c.data[digitsStart] == '0' {
		return numberToken{}, newError(InvalidNumber, start)
	}

	isFloat := false
	if pos < n && c.data[pos] == '.' {
		isFloat = true
		pos++
		fracStart := pos
		for pos < n && isDigit(c.data[pos]) {
			pos++
		}
		if pos == fracStart {
			return numberToken{}, newError(InvalidNumber, start)
		}
	}
	if pos < n && (c.data[pos] == 'e' || c.data[pos] == 'E') {
		isFloat = true
		pos++
		if pos < n && (c.data[pos] == '+' || c.data[pos] == '-') {
			pos++
		}
		expStart := pos
		for pos < n && isDigit(c.data[pos]) {
			pos++
		}
		if pos == expStart {
			return numberToken{}, newError(InvalidNumber, start)
		}
	}

	if c.policy.Checked() && pos < n {
		switch c.data[pos] {
		case ',', ']', '}', ' ', '\t', '\r', '\n':
		default:
			return numberToken{}, newError(InvalidNumber, start)
		}
	}

	c.pos = pos
	return numberToken{start: start, end: pos, isFloat: isFloat}, nil
}

func bitSizeOf[T Integer]() int {
	var z T
	return reflect.TypeOf(z).Bits()
}

// isUnsignedT reports whether T is an unsigned integer type, using the
// standard wraparound trick (0-1 overflows to the max value) rather than
// importing a constraints package just for this.
func isUnsignedT[T Integer]() bool {
	var z T
	return z-1 > z
}

func fitsInteger[T Integer](mag uint64, negative bool) bool {
	size := bitSizeOf[T]()
	if isUnsignedT[T]() {
		if negative {
			return false
		}
		if size >= 64 {
			return true
		}
		return mag <= (uint64(1)<<uint(size))-1
	}
	if size >= 64 {
		if negative {
			return mag <= 1<<63
		}
		return mag <= (1<<63)-1
	}
	limit := uint64(1) << uint(size-1)
	if negative {
		return mag <= limit
	}
	return mag <= limit-1
}

// ParseInt parses a JSON integer literal (optional '-' then digits) at
// the cursor into T. Under Checked=yes it rejects leading zeros (other
// than the literal "0"), overflow of T's width, and a non-digit
// terminator outside {',', ']', '}', whitespace}. A fractional part or
// exponent is always rejected: those literals belong to ParseFloat.
func ParseInt[T Integer](c *Cursor) (T, error) {
	start := c.pos
	tok, err := scanNumberToken(c)
	if err != nil {
		return 0, err
	}
	if tok.isFloat {
		return 0, newError(InvalidNumber, start)
	}

	raw := c.data[tok.start:tok.end]
	negative := false
	i := 0
	if raw[0] == '-' {
		negative = true
		i = 1
	}

	var mag uint64
	for ; i < len(raw); i++ {
		d := uint64(raw[i] - '0')
		if mag > (1<<64-1-d)/10 {
			return 0, newError(InvalidNumber, start)
		}
		mag = mag*10 + d
	}

	if !fitsInteger[T](mag, negative) {
		return 0, newError(InvalidNumber, start)
	}
	if negative {
		return T(-int64(mag)), nil
	}
	return T(mag), nil
}

// pow10Table holds the exactly-representable powers of ten for float64
// (10^0 .. 10^22); beyond this range the fast path defers to strconv.
var pow10Table = [23]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// fastParseFloat implements the integer-accumulator fast path: it is
// exact whenever the mantissa fits in 2^53 and the combined decimal
// exponent falls within the exactly-representable power-of-ten table.
// Any literal outside that envelope reports ok=false so the caller can
// fall back to strconv.ParseFloat.
func fastParseFloat(raw []byte) (f float64, ok bool) {
	i := 0
	n := len(raw)
	negative := false
	if i < n && raw[i] == '-' {
		negative = true
		i++
	}

	var mantissa uint64
	digits := 0
	exp := 0
	overflowed := false

	for i < n && isDigit(raw[i]) {
		if mantissa > (1<<53)/10 {
			overflowed = true
		} else {
			mantissa = mantissa*10 + uint64(raw[i]-'0')
			digits++
		}
		i++
	}
	if i < n && raw[i] == '.' {
		i++
		for i < n && isDigit(raw[i]) {
			if mantissa > (1<<53)/10 {
				overflowed = true
			} else {
				mantissa = mantissa*10 + uint64(raw[i]-'0')
				digits++
				exp--
			}
			i++
		}
	}
	if overflowed || digits == 0 {
		return 0, false
	}

	explicitExp := 0
	if i < n && (raw[i] == 'e' || raw[i] == 'E') {
		i++
		expNegative := false
		if i < n && (raw[i] == '+' || raw[i] == '-') {
			expNegative = raw[i] == '-'
			i++
		}
		start := i
		for i < n && isDigit(raw[i]) {
			explicitExp = explicitExp*10 + int(raw[i]-'0')
			i++
			if explicitExp > 1000 {
				return 0, false
			}
		}
		if i == start {
			return 0, false
		}
		if expNegative {
			explicitExp = -explicitExp
		}
	}
	exp += explicitExp

	f = float64(mantissa)
	switch {
	case exp == 0:
		// nothing to scale
	case exp > 0 && exp <= 22:
		f *= pow10Table[exp]
	case exp < 0 && -exp <= 22:
		f /= pow10Table[-exp]
	default:
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

// ParseFloat parses a JSON number literal at the cursor into T. The fast
// path (integer accumulator + power-of-ten table) is used unless the
// policy sets IEEE754Precise, the mantissa overflows 2^53, or the decimal
// exponent exceeds the exact power-of-ten table — in which case the
// fallback defers to strconv.ParseFloat, Go's locale-independent
// decimal-to-binary converter. An out-of-range literal (e.g. 1e9999)
// yields ±Inf rather than an error.
func ParseFloat[T Float](c *Cursor) (T, error) {
	start := c.pos
	tok, err := scanNumberToken(c)
	if err != nil {
		return 0, err
	}
	raw := c.data[tok.start:tok.end]

	if !c.policy.IEEE754Precise() {
		if f, ok := fastParseFloat(raw); ok {
			return T(f), nil
		}
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return T(f), nil
		}
		return 0, newError(InvalidNumber, start)
	}
	return T(f), nil
}
