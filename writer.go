package jsonbind

import (
	"strconv"
)

// Sink is the output-byte-sink interface the serializer writes through
// (C11): "any stateful appender". *bytes.Buffer, *bufio.Writer, and
// *strings.Builder all satisfy it.
type Sink interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

// Writer wraps a Sink with the small helpers the serializer needs
// (quoted-string escaping, number formatting) so individual Serialize
// hooks stay one-liners. Serialization never allocates on the sink's
// behalf beyond what strconv's formatters need internally.
type Writer struct {
	Sink   Sink
	Policy Policy
}

func NewWriter(sink Sink, policy Policy) *Writer {
	return &Writer{Sink: sink, Policy: policy}
}

func (w *Writer) raw(s string) error {
	_, err := w.Sink.WriteString(s)
	return err
}

func (w *Writer) byte(b byte) error {
	return w.Sink.WriteByte(b)
}

// WriteName emits a quoted member name followed by a colon, e.g. `"a":`.
func (w *Writer) WriteName(name string) error {
	if err := w.WriteString(name); err != nil {
		return err
	}
	return w.byte(':')
}

// WriteString emits s as a quoted JSON string with escapes inserted for
// `"`, `\`, and control bytes; non-ASCII UTF-8 bytes pass through
// unescaped.
func (w *Writer) WriteString(s string) error {
	if err := w.byte('"'); err != nil {
		return err
	}
	if err := writeEscapedBody(w, s); err != nil {
		return err
	}
	return w.byte('"')
}

func writeEscapedBody(w *Writer, s string) error {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		esc, ok := escapeFor(c)
		if !ok {
			continue
		}
		if start < i {
			if err := w.raw(s[start:i]); err != nil {
				return err
			}
		}
		if err := w.raw(esc); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(s) {
		return w.raw(s[start:])
	}
	return nil
}

func escapeFor(c byte) (string, bool) {
	switch c {
	case '"':
		return `\"`, true
	case '\\':
		return `\\`, true
	case '\n':
		return `\n`, true
	case '\r':
		return `\r`, true
	case '\t':
		return `\t`, true
	case '\b':
		return `\b`, true
	case '\f':
		return `\f`, true
	}
	if c < 0x20 {
		const hex = "0123456789abcdef"
		return `\u00` + string([]byte{hex[c>>4], hex[c&0xf]}), true
	}
	return "", false
}

// WriteInt emits an integer value in decimal.
func WriteInt[T Integer](w *Writer, v T) error {
	return w.raw(strconv.FormatInt(int64(v), 10))
}

// WriteUint emits an unsigned integer value in decimal. Use this instead
// of WriteInt for types whose range exceeds int64 (uint64 near its max).
func WriteUint[T Integer](w *Writer, v T) error {
	return w.raw(strconv.FormatUint(uint64(v), 10))
}

// WriteFloat emits a floating-point value using the shortest
// round-trippable decimal representation (strconv's 'g' format with
// precision -1), matching the fast/precise duality of ParseFloat: the
// bytes written, reparsed, reproduce the same float64 bit pattern.
func WriteFloat[T Float](w *Writer, v T) error {
	return w.raw(strconv.FormatFloat(float64(v), 'g', -1, 64))
}

// WriteBool emits `true` or `false`.
func WriteBool(w *Writer, v bool) error {
	if v {
		return w.raw("true")
	}
	return w.raw("false")
}

// WriteNull emits the `null` literal.
func WriteNull(w *Writer) error {
	return w.raw("null")
}
