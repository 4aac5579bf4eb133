package inventory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimestampLayout is the ISO-8601 form used for defaulted created_at values.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Normalizer converts untyped payloads into records. It never fails: unusable
// input degrades to a default and a warning is logged.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewNormalizer creates a normalizer that logs fallbacks to logger.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Build produces a complete record from payload. With generateID the
// identifier is always fresh; otherwise it is copied from the payload as-is.
func (n *Normalizer) Build(payload map[string]any, generateID bool) Record {
	record := Record{
		InventoryID:  n.SanitizeNumber(payload[AttrInventoryID]),
		CreatedAt:    n.createdAt(payload[AttrCreatedAt]),
		Price:        n.SanitizeNumber(payload[AttrPrice]),
		Quantity:     n.SanitizeNumber(payload[AttrQuantity]),
		ExchangeType: payload[AttrExchangeType],
		Status:       payload[AttrStatus],
		User:         n.user(payload[AttrUser]),
	}

	if generateID {
		record.ID = n.newID()
	} else {
		record.ID = rawID(payload)
	}

	return record
}

// BuildUpdate keeps only the mutable fields present in payload, coercing the
// numeric ones. Identifier and unknown keys are dropped.
func (n *Normalizer) BuildUpdate(payload map[string]any) RecordUpdate {
	var update RecordUpdate

	if v, ok := payload[AttrInventoryID]; ok {
		update.InventoryID = ptr(n.SanitizeNumber(v))
	}
	if v, ok := payload[AttrCreatedAt]; ok {
		if s, isString := v.(string); isString {
			update.CreatedAt = &s
		} else {
			n.logger.Warn("Ignoring non-string created_at in update", zap.Any("value", v))
		}
	}
	if v, ok := payload[AttrPrice]; ok {
		update.Price = ptr(n.SanitizeNumber(v))
	}
	if v, ok := payload[AttrQuantity]; ok {
		update.Quantity = ptr(n.SanitizeNumber(v))
	}
	if v, ok := payload[AttrExchangeType]; ok {
		update.ExchangeType = &Opaque{Value: v}
	}
	if v, ok := payload[AttrStatus]; ok {
		update.Status = &Opaque{Value: v}
	}
	if v, ok := payload[AttrUser]; ok {
		if _, isObject := v.(map[string]any); isObject {
			update.User = ptr(n.user(v))
		} else {
			n.logger.Warn("Ignoring non-object user in update", zap.Any("value", v))
		}
	}

	return update
}

// SanitizeNumber coerces value into a finite number, returning 0 for
// anything that does not convert to one.
func (n *Normalizer) SanitizeNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		switch v {
		case "NaN", "null", "undefined", "Infinity", "-Infinity":
			return 0
		}
		if strings.TrimSpace(v) == "" {
			return 0
		}
	}

	num, ok := toNumber(value)
	if !ok || math.IsNaN(num) || math.IsInf(num, 0) {
		n.logger.Warn("Invalid number value detected, setting to 0", zap.Any("value", value))
		return 0
	}
	return num
}

func (n *Normalizer) createdAt(value any) string {
	s, isString := value.(string)
	if isString && s != "" {
		return s
	}
	if value != nil && !isString {
		n.logger.Warn("Ignoring non-string created_at", zap.Any("value", value))
	}
	return n.now().UTC().Format(TimestampLayout)
}

func (n *Normalizer) user(value any) User {
	fields, _ := value.(map[string]any)
	return User{
		UserID:   n.SanitizeNumber(fields[AttrUserID]),
		RoleUser: fields[AttrRoleUser],
	}
}

// toNumber mirrors a loose numeric conversion: numbers pass, booleans map to
// 0/1, strings are parsed after trimming and may carry a 0x/0o/0b prefix.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case fmt.Stringer:
		return parseNumber(v.String())
	case string:
		return parseNumber(v)
	default:
		return 0, false
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	// Digit separators are a Go literal feature, not a numeric spelling.
	if strings.Contains(s, "_") {
		return 0, false
	}

	if base, digits, ok := basePrefix(s); ok {
		i, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return 0, false
		}
		return float64(i), true
	}

	unsigned := strings.TrimLeft(s, "+-")
	if _, _, ok := basePrefix(unsigned); ok {
		// signed prefixed forms, including hex floats such as "-0x1p4"
		return 0, false
	}

	// ParseFloat accepts spellings such as "inf" that a strict conversion
	// rejects; those and out-of-range values surface as non-finite.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// basePrefix splits an unsigned 0x, 0o or 0b literal into base and digits.
func basePrefix(s string) (int, string, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, "", false
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:], true
	case 'o', 'O':
		return 8, s[2:], true
	case 'b', 'B':
		return 2, s[2:], true
	}
	return 0, "", false
}

func rawID(payload map[string]any) string {
	for _, key := range []string{AttrID, legacyAttrID} {
		switch v := payload[key].(type) {
		case nil:
			continue
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

func ptr[T any](v T) *T {
	return &v
}
