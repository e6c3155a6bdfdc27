// Package nameformat implements NameTransform (C1): pure, deterministic,
// idempotent functions mapping raw GIR identifiers to valid target-surface
// identifiers. Each exported function handles exactly one GIR identifier
// class (module, type, enum value, constant, function, parameter,
// property, field, signal) because the escaping rules differ per class
// (§4.1).
package nameformat

import (
	"strings"
	"unicode"
)

// numericPrefix is prepended to an identifier that starts with a digit —
// target-surface identifiers, like the teacher's own target grammar,
// cannot start with one.
const numericPrefix = "N"

var reservedWords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "export": {}, "extends": {}, "finally": {}, "for": {},
	"function": {}, "if": {}, "import": {}, "in": {}, "instanceof": {},
	"new": {}, "return": {}, "super": {}, "switch": {}, "this": {},
	"throw": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"while": {}, "with": {}, "yield": {}, "let": {}, "static": {},
	"enum": {}, "await": {}, "implements": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "interface": {}, "null": {}, "true": {},
	"false": {}, "arguments": {}, "eval": {},
}

// emptyPlaceholder is substituted for an identifier that is literally the
// empty string (§4.1).
const emptyPlaceholder = "-"

// ModuleName transforms a GIR namespace name into a target-surface
// package-name fragment: returned unchanged after the empty-string guard —
// namespaces are already valid identifiers by GIR convention.
func ModuleName(namespace string) string {
	if namespace == "" {
		return emptyPlaceholder
	}
	return namespace
}

// TypeName transforms a GIR type (class/interface/record/union/enum/alias)
// name. Type names are PascalCase by GIR convention and never start with a
// digit, so this is identity after the empty-string guard.
func TypeName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	return raw
}

// EnumValueName transforms one <member name> into a target-surface
// identifier: the dash GIR sometimes uses in place of an underscore is
// removed outright (not substituted), case is otherwise left as given,
// and a leading digit is prefixed.
func EnumValueName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	name := strings.ReplaceAll(raw, "-", "")
	if unicode.IsDigit(rune(name[0])) {
		return numericPrefix + name
	}
	return name
}

// StartsWithDigit reports whether an EnumValueName-transformed identifier
// needed (and received) the numeric-prefix escape — callers use this to
// decide whether to emit a commented placeholder instead of the member
// (§8 scenario 2, Testable Properties).
func StartsWithDigit(raw string) bool {
	return raw != "" && unicode.IsDigit(rune(raw[0]))
}

// ConstantName transforms a GIR <constant name>. Constants are
// SCREAMING_SNAKE_CASE by convention and, like enum values, may start with
// a digit.
func ConstantName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	if unicode.IsDigit(rune(raw[0])) {
		return numericPrefix + raw
	}
	return raw
}

// FunctionName transforms a GIR <function>/<method> name. Function names
// are snake_case in GIR and pass through unchanged — the target surface's
// convention for this corpus keeps C-style naming for callables; only
// unquoted dashed property names get case-shifted (see PropertyName).
func FunctionName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	return raw
}

// ParamName transforms a GIR parameter name, suffixing it with an
// underscore when it collides with a target-surface reserved word
// (§4.1).
func ParamName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	if _, reserved := reservedWords[raw]; reserved {
		return raw + "_"
	}
	return raw
}

// PropertyName transforms a GIR <property name>, which is kebab-case in
// GIR. When allowQuotes is true and the name contains a dash, it is
// quoted verbatim (valid as a quoted object-literal key); otherwise it is
// camel-cased so it remains a valid unquoted identifier (§4.1).
func PropertyName(raw string, allowQuotes bool) string {
	if raw == "" {
		return emptyPlaceholder
	}
	if !strings.Contains(raw, "-") {
		return raw
	}
	if allowQuotes {
		return `"` + raw + `"`
	}
	return camelCase(raw)
}

// FieldName transforms a GIR <field name>. Field names are snake_case and
// pass through unchanged, mirroring FunctionName.
func FieldName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	return raw
}

// SignalName transforms a GIR <glib:signal name>, which is kebab-case.
// Signal names are always used as string literals (in "notify::prop" and
// signal-connect call sites), never as bare identifiers, so no case
// conversion is needed — only the empty-string guard applies.
func SignalName(raw string) string {
	if raw == "" {
		return emptyPlaceholder
	}
	return raw
}

// camelCase converts a kebab-case identifier to camelCase.
func camelCase(raw string) string {
	parts := strings.Split(raw, "-")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
