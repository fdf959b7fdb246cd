package password

import (
	"strings"
	"unicode"
)

// Policy define los requisitos mínimos de una contraseña nueva.
type Policy struct {
	MinLength         int
	RejectNumericOnly bool
	RejectCommon      bool
}

// DefaultPolicy es la política aplicada en signup y reset.
var DefaultPolicy = Policy{
	MinLength:         MinLength,
	RejectNumericOnly: true,
	RejectCommon:      true,
}

// commonPasswords son las contraseñas triviales que rechazamos siempre.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"12345678":   {},
	"123456789":  {},
	"1234567890": {},
	"qwerty123":  {},
	"contraseña": {},
	"iloveyou":   {},
	"letmein1":   {},
}

// Validate chequea la contraseña contra la política y devuelve los motivos
// de rechazo.
func (p Policy) Validate(s string) (ok bool, reasons []string) {
	if len([]rune(s)) < p.MinLength {
		reasons = append(reasons, "too_short")
	}
	if p.RejectNumericOnly && s != "" && isNumericOnly(s) {
		reasons = append(reasons, "numeric_only")
	}
	if p.RejectCommon {
		if _, found := commonPasswords[strings.ToLower(strings.TrimSpace(s))]; found {
			reasons = append(reasons, "too_common")
		}
	}
	return len(reasons) == 0, reasons
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
