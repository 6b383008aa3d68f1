package jsonbind

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultFunc produces a value for a member whose "default=" tag rule
// names it, called once per absent member during a parse. args are the
// parsed contents of the call's parentheses, if any.
type DefaultFunc func(args ...any) (any, error)

// FunctionCall is a bind tag's default expression, split into the
// function name and its (best-effort typed) argument list.
type FunctionCall struct {
	Name string
	Args []any
}

var (
	defaultFuncsMu sync.RWMutex
	defaultFuncs   = map[string]DefaultFunc{}
)

func init() {
	RegisterDefaultFunc("uuid", DefaultUUID)
	RegisterDefaultFunc("now", DefaultNow)
}

// RegisterDefaultFunc adds (or replaces) a named default function in
// the process-wide registry consulted by ResolveDefault. Built-in
// names "uuid" and "now" may be overridden by a caller that wants
// different behavior.
func RegisterDefaultFunc(name string, fn DefaultFunc) {
	defaultFuncsMu.Lock()
	defer defaultFuncsMu.Unlock()
	defaultFuncs[name] = fn
}

func getDefaultFunc(name string) (DefaultFunc, bool) {
	defaultFuncsMu.RLock()
	defer defaultFuncsMu.RUnlock()
	fn, ok := defaultFuncs[name]
	return fn, ok
}

// DefaultUUID generates a random (v4) UUID string.
func DefaultUUID(_ ...any) (any, error) {
	return uuid.New().String(), nil
}

// DefaultNow returns the current time formatted as RFC 3339, or with
// args[0] as a Go reference-time layout when given.
func DefaultNow(args ...any) (any, error) {
	layout := time.RFC3339
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			layout = s
		}
	}
	return time.Now().Format(layout), nil
}

// ResolveDefault evaluates a bind tag's default="..." expression: a
// call like "uuid()" or "now(2006-01-02)" is dispatched through the
// registry; anything else (including a call to an unregistered name)
// is returned as a literal string, matching the tag's own text.
func ResolveDefault(expr string) (any, error) {
	call := parseFunctionCall(expr)
	if call == nil {
		return expr, nil
	}
	fn, ok := getDefaultFunc(call.Name)
	if !ok {
		return expr, nil
	}
	return fn(call.Args...)
}

// parseFunctionCall recognizes "name(args...)" syntax, returning nil
// when expr isn't shaped like a call (so the caller treats it as a
// literal default value instead).
func parseFunctionCall(expr string) *FunctionCall {
	if len(expr) < 2 || !strings.HasSuffix(expr, ")") {
		return nil
	}
	paren := strings.IndexByte(expr, '(')
	if paren <= 0 {
		return nil
	}
	name := strings.TrimSpace(expr[:paren])
	argsStr := strings.TrimSpace(expr[paren+1 : len(expr)-1])

	var args []any
	if argsStr != "" {
		args = parseArgs(argsStr)
	}
	return &FunctionCall{Name: name, Args: args}
}

// parseArgs splits a call's argument text on commas and best-effort
// types each piece as an int64, a float64, or a string.
func parseArgs(argsStr string) []any {
	parts := strings.Split(argsStr, ",")
	args := make([]any, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i, err := strconv.ParseInt(part, 10, 64); err == nil {
			args = append(args, i)
			continue
		}
		if f, err := strconv.ParseFloat(part, 64); err == nil {
			args = append(args, f)
			continue
		}
		args = append(args, part)
	}
	return args
}
