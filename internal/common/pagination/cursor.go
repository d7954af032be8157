package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// MaxCursorLength is the longest encoded cursor accepted by DecodeCursor.
const MaxCursorLength = 2048

// Keys of a keyset cursor payload.
const (
	CursorValueKey = "v"
	CursorIDKey    = "id"
)

// maxExactInteger is the largest magnitude a canonical JSON number (an IEEE
// double) carries without rounding. NewCursor writes larger integers as
// decimal strings.
const maxExactInteger = 1 << 53

// Reasons recorded when a cursor is ignored.
const (
	rejectOversized    = "oversized"
	rejectBase64       = "base64"
	rejectJSON         = "json"
	rejectNotObject    = "not_object"
	rejectTypeMismatch = "type_mismatch"
)

// EncodeCursor serializes values to canonical JSON (RFC 8785, stable key order)
// and returns it base64url-encoded without padding.
// Canonical numbers are doubles: integers beyond ±2^53 lose precision here,
// so keyset positions should be built with NewCursor.
func EncodeCursor(values map[string]any) (string, error) {
	if values == nil {
		values = map[string]any{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	canonical, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("encode cursor: canonicalize: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(canonical), nil
}

// DecodeCursor parses a token produced by EncodeCursor.
// It never fails: empty, oversized, malformed, array or scalar payloads all
// decode to an empty map, which restarts pagination from the first page.
// Integral numbers decode as int64, other numbers as float64; an integral
// float such as 3.0 therefore comes back as int64(3).
func DecodeCursor(token string) map[string]any {
	values, reason := decodeCursor(token)
	if reason != "" {
		RecordCursorRejected(reason)
		slog.Debug("cursor ignored", slog.String("reason", reason), slog.Int("length", len(token)))
		return map[string]any{}
	}
	return values
}

func decodeCursor(token string) (map[string]any, string) {
	if token == "" {
		return map[string]any{}, ""
	}
	if len(token) > MaxCursorLength {
		return nil, rejectOversized
	}

	// パディングを復元してから標準のURLエンコーディングでデコード
	if pad := len(token) % 4; pad != 0 {
		token += strings.Repeat("=", 4-pad)
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, rejectBase64
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, rejectJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, rejectJSON
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, rejectNotObject
	}
	normalized, ok := normalizeNumbers(obj).(map[string]any)
	if !ok {
		return nil, rejectJSON
	}
	return normalized, ""
}

// normalizeNumbers replaces json.Number values with int64 or float64.
// A number that fits neither makes the whole value invalid (nil).
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if n, isNum := item.(json.Number); isNum {
				converted := normalizeNumbers(n)
				if converted == nil {
					return nil
				}
				out[k] = converted
				continue
			}
			out[k] = normalizeNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeNumbers(item)
		}
		return out
	default:
		return v
	}
}

// KeysetCursor is the typed view of a decoded cursor for one sort column.
type KeysetCursor struct {
	Value    any // int64, float64, string or time.Time depending on the column kind
	HasValue bool
	ID       int64
	HasID    bool
}

// IsZero reports whether the cursor carries no continuation position.
func (c KeysetCursor) IsZero() bool {
	return !c.HasValue && !c.HasID
}

// ParseKeysetCursor decodes token for the given sort column.
// A value whose type does not match the column kind is treated as tampering
// and the whole cursor is dropped; a JSON null value means the last row had a
// NULL sort value.
func ParseKeysetCursor(token string, sort SortColumn) KeysetCursor {
	values := DecodeCursor(token)
	if len(values) == 0 {
		return KeysetCursor{}
	}

	var cur KeysetCursor
	if rawID, ok := values[CursorIDKey]; ok {
		id, isInt := exactInt64(rawID)
		if !isInt {
			RecordCursorRejected(rejectTypeMismatch)
			return KeysetCursor{}
		}
		cur.ID, cur.HasID = id, true
	}

	rawValue, ok := values[CursorValueKey]
	if !ok || rawValue == nil {
		return cur
	}
	value, ok := coerceValue(rawValue, sort.Kind)
	if !ok {
		RecordCursorRejected(rejectTypeMismatch)
		return KeysetCursor{}
	}
	cur.Value, cur.HasValue = value, true
	return cur
}

func coerceValue(v any, kind SortKind) (any, bool) {
	switch kind {
	case KindNumeric:
		switch v.(type) {
		case int64, float64:
			return v, true
		case string:
			if i, ok := exactInt64(v); ok {
				return i, true
			}
		}
	case KindText:
		if s, ok := v.(string); ok {
			return s, true
		}
	case KindTimestamp:
		if s, ok := v.(string); ok {
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err == nil {
				return ts, true
			}
		}
	}
	return nil, false
}

// NewCursor encodes the keyset position (v, id) of a row.
// Time values are rendered as RFC 3339 UTC strings; nil pointers as null.
func NewCursor(value any, id int64) string {
	token, err := EncodeCursor(map[string]any{
		CursorValueKey: cursorValue(value),
		CursorIDKey:    exactInt(id),
	})
	if err != nil {
		// NaN/Inf cannot be represented in JSON; id alone still resumes the NULL tail.
		token, _ = EncodeCursor(map[string]any{CursorIDKey: exactInt(id)})
	}
	return token
}

func cursorValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339Nano)
	case *float64:
		if t == nil {
			return nil
		}
		return *t
	case int64:
		return exactInt(t)
	case *int64:
		if t == nil {
			return nil
		}
		return exactInt(*t)
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case int:
		return exactInt(int64(t))
	case int32:
		return int64(t)
	default:
		return v
	}
}

// exactInt returns i unchanged when a double holds it exactly, otherwise its
// decimal string.
func exactInt(i int64) any {
	if i > maxExactInteger || i < -maxExactInteger {
		return strconv.FormatInt(i, 10)
	}
	return i
}

// exactInt64 reads an integer written by exactInt.
func exactInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
