// Package validation holds the static checks a complaint payload must pass
// before it is allowed anywhere near storage. All functions are pure:
// referential checks that need a store lookup live in the complaint service.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDenylist is the fixed spam-token list carried over from the
// original deployment. Matching is case-insensitive.
var DefaultDenylist = []string{"viagra", "casino", "lottery", "winner", "click here", "free money"}

// Payload is the loosely-typed submission boundary. EntityID stays untyped
// because JSON clients send numbers and form clients send strings; parsing
// fails closed on anything ambiguous.
type Payload struct {
	EntityID    any
	Description string
}

// Validator applies the configured rules to a payload.
type Validator struct {
	minLen   int
	maxLen   int
	denylist []string
}

// New returns a Validator with the given description bounds. A nil denylist
// selects DefaultDenylist.
func New(minLen, maxLen int, denylist []string) *Validator {
	if denylist == nil {
		denylist = DefaultDenylist
	}
	return &Validator{minLen: minLen, maxLen: maxLen, denylist: denylist}
}

// Validate returns the ordered list of human-readable problems with the
// payload. An empty list means the payload passed static validation.
func (v *Validator) Validate(p Payload) []string {
	var errs []string

	if _, err := ParseEntityID(p.EntityID); err != nil {
		errs = append(errs, "Debe seleccionar una entidad válida")
	}

	desc := strings.TrimSpace(p.Description)
	length := len([]rune(desc))
	if length < v.minLen {
		errs = append(errs, fmt.Sprintf("La descripción debe tener al menos %d caracteres", v.minLen))
	}
	if length > v.maxLen {
		errs = append(errs, fmt.Sprintf("La descripción no puede exceder %d caracteres", v.maxLen))
	}

	lowered := strings.ToLower(desc)
	for _, token := range v.denylist {
		if strings.Contains(lowered, token) {
			// One generic error no matter how many tokens match.
			errs = append(errs, "El contenido contiene palabras no permitidas")
			break
		}
	}

	return errs
}

// ParseEntityID coerces a loosely-typed entity reference into a positive
// integer id. It rejects missing values, non-numeric strings, fractional
// numbers, zero and negatives.
func ParseEntityID(raw any) (uint, error) {
	switch v := raw.(type) {
	case nil:
		return 0, fmt.Errorf("entity id is required")
	case uint:
		if v == 0 {
			return 0, fmt.Errorf("entity id must be positive")
		}
		return v, nil
	case int:
		if v <= 0 {
			return 0, fmt.Errorf("entity id must be positive")
		}
		return uint(v), nil
	case int64:
		if v <= 0 {
			return 0, fmt.Errorf("entity id must be positive")
		}
		return uint(v), nil
	case float64:
		// JSON numbers always arrive as float64; only integral values pass.
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("entity id must be an integer")
		}
		if v <= 0 {
			return 0, fmt.Errorf("entity id must be positive")
		}
		return uint(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("entity id is not numeric")
		}
		if n <= 0 {
			return 0, fmt.Errorf("entity id must be positive")
		}
		return uint(n), nil
	default:
		return 0, fmt.Errorf("entity id has unsupported type %T", raw)
	}
}
