package jsonbind

import (
	"errors"
	"fmt"
)

// Reason is the closed set of failure reasons a parse or serialize call
// can surface. The set never grows at runtime: every producible value is
// one of the sentinels below.
type Reason int

const (
	Unknown Reason = iota
	UnexpectedEndOfData
	ExpectedToken
	InvalidNumber
	InvalidLiteral
	InvalidString
	MissingMemberName
	DuplicateJSONTag
	UnknownMember
)

func (r Reason) String() string {
	switch r {
	case UnexpectedEndOfData:
		return "UnexpectedEndOfData"
	case ExpectedToken:
		return "ExpectedToken"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidLiteral:
		return "InvalidLiteral"
	case InvalidString:
		return "InvalidString"
	case MissingMemberName:
		return "MissingMemberName"
	case DuplicateJSONTag:
		return "DuplicateJSONTag"
	case UnknownMember:
		return "UnknownMember"
	default:
		return "Unknown"
	}
}

// === Structural Errors ===
var (
	// errUnexpectedEndOfData is returned when the buffer is exhausted while
	// more input was structurally required (mid-comment, mid-string, etc).
	errUnexpectedEndOfData = errors.New("unexpected end of data")

	// errExpectedToken is returned when a specific structural byte (':',
	// ',', '{', etc) was required and something else was found.
	errExpectedToken = errors.New("expected token")
)

// === Value Errors ===
var (
	// errInvalidNumber is returned for a malformed numeric literal, or one
	// that overflows its target width under Checked=yes.
	errInvalidNumber = errors.New("invalid number")

	// errInvalidLiteral is returned for a malformed true/false/null token.
	errInvalidLiteral = errors.New("invalid literal")

	// errInvalidString is returned for an unescaped control byte, a bad
	// \u escape, or an unterminated string.
	errInvalidString = errors.New("invalid string")
)

// === Binding Errors ===
var (
	// errMissingMemberName is returned when a required, non-nullable
	// member is absent and no default function is registered for it, and
	// by the path navigator when a dotted/indexed selector names a member
	// or index that does not exist in the document.
	errMissingMemberName = errors.New("missing member name")

	// errDuplicateJSONTag is a compile-time guard: it should never be
	// produced from a clean parse call, only from a schema with a hash
	// collision that was not resolved by ForceFullNameCheck.
	errDuplicateJSONTag = errors.New("duplicate json tag")

	// errUnknownMember is returned only when strict unknown-member mode is
	// on (WithStrictUnknownMembers, BindOptions.StrictUnknownMembers, or
	// ParseClass's strictUnknownMembers argument) and an object key
	// matches no schema member.
	errUnknownMember = errors.New("unknown member")
)

func sentinelFor(r Reason) error {
	switch r {
	case UnexpectedEndOfData:
		return errUnexpectedEndOfData
	case ExpectedToken:
		return errExpectedToken
	case InvalidNumber:
		return errInvalidNumber
	case InvalidLiteral:
		return errInvalidLiteral
	case InvalidString:
		return errInvalidString
	case MissingMemberName:
		return errMissingMemberName
	case DuplicateJSONTag:
		return errDuplicateJSONTag
	case UnknownMember:
		return errUnknownMember
	default:
		return errors.New("unknown error")
	}
}

// Error is the structured failure type returned by every parse and
// serialize entry point. It carries the byte offset of the cursor at the
// moment of failure; callers that want a human path can pass Offset to
// Locate and FormatPath.
type Error struct {
	Reason Reason
	Offset int
	Path   string // populated only when the caller enriched it via WithPath
	err    error
}

func newError(r Reason, offset int) *Error {
	return &Error{Reason: r, Offset: offset, err: sentinelFor(r)}
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at offset %d (%s): %s", e.Reason, e.Offset, e.Path, e.err)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Reason, e.Offset, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// WithPath returns a copy of e enriched with a JSON-path string, as
// produced by FormatPath(Locate(doc, e.Offset)).
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// Is supports errors.Is against the package's unexported sentinel errors,
// so callers can check e.g. errors.Is(err, io.EOF)-style without a type
// switch on Reason.
func (e *Error) Is(target error) bool {
	return errors.Is(e.err, target)
}
