package inventory

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedNormalizer() (*Normalizer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewNormalizer(zap.New(core)), logs
}

func TestSanitizeNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		warns bool
	}{
		{name: "nil", input: nil, want: 0},
		{name: "NaN literal", input: "NaN", want: 0},
		{name: "null literal", input: "null", want: 0},
		{name: "undefined literal", input: "undefined", want: 0},
		{name: "empty string", input: "", want: 0},
		{name: "whitespace", input: "  \t ", want: 0},
		{name: "Infinity literal", input: "Infinity", want: 0},
		{name: "negative Infinity literal", input: "-Infinity", want: 0},
		{name: "integer string", input: "42", want: 42},
		{name: "padded string", input: " 42 ", want: 42},
		{name: "decimal string", input: "42.5", want: 42.5},
		{name: "negative string", input: "-3", want: -3},
		{name: "exponent string", input: "1e3", want: 1000},
		{name: "hex string", input: "0x10", want: 16},
		{name: "float", input: 19.99, want: 19.99},
		{name: "int", input: 7, want: 7},
		{name: "json number", input: json.Number("5"), want: 5},
		{name: "true", input: true, want: 1},
		{name: "false", input: false, want: 0},
		{name: "garbage string", input: "abc", want: 0, warns: true},
		{name: "inf spelling", input: "inf", want: 0, warns: true},
		{name: "overflow", input: "1e400", want: 0, warns: true},
		{name: "float NaN", input: math.NaN(), want: 0, warns: true},
		{name: "float Inf", input: math.Inf(1), want: 0, warns: true},
		{name: "object", input: map[string]any{"a": 1}, want: 0, warns: true},
		{name: "underscore digits", input: "1_000", want: 0, warns: true},
		{name: "underscore hex digits", input: "0x1_0", want: 0, warns: true},
		{name: "underscore binary digits", input: "0b1_1", want: 0, warns: true},
		{name: "underscore decimal", input: "1_0.5", want: 0, warns: true},
		{name: "octal string", input: "0o17", want: 15},
		{name: "binary string", input: "0b11", want: 3},
		{name: "bare hex prefix", input: "0x", want: 0, warns: true},
		{name: "signed hex", input: "-0x10", want: 0, warns: true},
		{name: "hex float", input: "0x1p4", want: 0, warns: true},
		{name: "int8", input: int8(-4), want: -4},
		{name: "int16", input: int16(300), want: 300},
		{name: "uint8", input: uint8(200), want: 200},
		{name: "uint16", input: uint16(60000), want: 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, logs := newObservedNormalizer()

			got := n.SanitizeNumber(tt.input)

			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
			if tt.warns {
				assert.Equal(t, 1, logs.Len())
			} else {
				assert.Equal(t, 0, logs.Len())
			}
		})
	}
}

func TestBuild(t *testing.T) {
	payload := map[string]any{
		"id":            "client-supplied",
		"inventory_id":  "7",
		"price":         19.99,
		"quantity":      "3",
		"exchange_type": "buy",
		"status":        "open",
		"user": map[string]any{
			"user_id":   "5",
			"role_user": "trader",
		},
	}

	t.Run("generates identifier", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		first := n.Build(payload, true)
		second := n.Build(payload, true)

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, "client-supplied", first.ID)
		assert.NotEqual(t, first.ID, second.ID)

		first.ID, second.ID = "", ""
		first.CreatedAt, second.CreatedAt = "", ""
		assert.Equal(t, first, second)
	})

	t.Run("coerces fields", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		record := n.Build(payload, true)

		assert.Equal(t, float64(7), record.InventoryID)
		assert.Equal(t, 19.99, record.Price)
		assert.Equal(t, float64(3), record.Quantity)
		assert.Equal(t, "buy", record.ExchangeType)
		assert.Equal(t, "open", record.Status)
		assert.Equal(t, float64(5), record.User.UserID)
		assert.Equal(t, "trader", record.User.RoleUser)
	})

	t.Run("preserves identifier", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		record := n.Build(payload, false)

		assert.Equal(t, "client-supplied", record.ID)
	})

	t.Run("passes through missing identifier", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		record := n.Build(map[string]any{}, false)

		assert.Equal(t, "", record.ID)
	})

	t.Run("accepts legacy identifier key", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		record := n.Build(map[string]any{"_id": "legacy"}, false)

		assert.Equal(t, "legacy", record.ID)
	})

	t.Run("defaults created_at to now", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		before := time.Now().UTC().Truncate(time.Millisecond)
		record := n.Build(map[string]any{}, true)
		after := time.Now().UTC()

		created, err := time.Parse(time.RFC3339Nano, record.CreatedAt)
		require.NoError(t, err)
		assert.False(t, created.Before(before), "created_at %s before %s", created, before)
		assert.False(t, created.After(after), "created_at %s after %s", created, after)
	})

	t.Run("keeps supplied created_at verbatim", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		record := n.Build(map[string]any{"created_at": "not-a-date"}, true)

		assert.Equal(t, "not-a-date", record.CreatedAt)
	})

	t.Run("non-string created_at defaults to now", func(t *testing.T) {
		n, logs := newObservedNormalizer()
		n.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

		record := n.Build(map[string]any{"created_at": float64(1700000000)}, true)

		assert.Equal(t, "2024-01-02T03:04:05.000Z", record.CreatedAt)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "Ignoring non-string created_at", logs.All()[0].Message)
	})

	t.Run("empty payload yields complete shape", func(t *testing.T) {
		n, logs := newObservedNormalizer()
		n.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC) }
		n.newID = func() string { return "fixed" }

		record := n.Build(map[string]any{}, true)

		assert.Equal(t, Record{
			ID:        "fixed",
			CreatedAt: "2024-01-02T03:04:05.006Z",
		}, record)
		assert.Equal(t, 0, logs.Len())

		raw, err := json.Marshal(record)
		require.NoError(t, err)
		var shape map[string]any
		require.NoError(t, json.Unmarshal(raw, &shape))
		for _, key := range []string{"id", "inventory_id", "created_at", "price", "quantity", "exchange_type", "status", "user"} {
			assert.Contains(t, shape, key)
		}
		assert.Contains(t, shape["user"], "user_id")
		assert.Contains(t, shape["user"], "role_user")
	})

	t.Run("non-object user degrades", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		record := n.Build(map[string]any{"user": "bob"}, true)

		assert.Equal(t, User{}, record.User)
	})
}

func TestBuildUpdate(t *testing.T) {
	t.Run("only present fields", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		update := n.BuildUpdate(map[string]any{"price": "abc"})

		require.NotNil(t, update.Price)
		assert.Equal(t, float64(0), *update.Price)
		assert.Nil(t, update.InventoryID)
		assert.Nil(t, update.Quantity)
		assert.Nil(t, update.CreatedAt)
		assert.Nil(t, update.ExchangeType)
		assert.Nil(t, update.Status)
		assert.Nil(t, update.User)
		assert.Equal(t, []UpdateField{{Name: "price", Value: float64(0)}}, update.Fields())
	})

	t.Run("identifier is never mutable", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		update := n.BuildUpdate(map[string]any{"id": "x", "_id": "y", "unknown": 1})

		assert.True(t, update.IsEmpty())
	})

	t.Run("opaque null is kept", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		update := n.BuildUpdate(map[string]any{"status": nil})

		require.NotNil(t, update.Status)
		assert.Nil(t, update.Status.Value)
		assert.Equal(t, []UpdateField{{Name: "status", Value: nil}}, update.Fields())
	})

	t.Run("user is normalised", func(t *testing.T) {
		n, _ := newObservedNormalizer()

		update := n.BuildUpdate(map[string]any{
			"user": map[string]any{"user_id": "9", "role_user": "admin"},
		})

		require.NotNil(t, update.User)
		assert.Equal(t, User{UserID: 9, RoleUser: "admin"}, *update.User)
	})

	t.Run("invalid shapes are skipped with a warning", func(t *testing.T) {
		n, logs := newObservedNormalizer()

		update := n.BuildUpdate(map[string]any{"user": "bob", "created_at": 5})

		assert.True(t, update.IsEmpty())
		assert.Equal(t, 2, logs.Len())
	})

	t.Run("apply leaves other fields untouched", func(t *testing.T) {
		n, _ := newObservedNormalizer()
		stored := Record{ID: "a", InventoryID: 7, Price: 19.99, Quantity: 3, Status: "open"}

		updated := n.BuildUpdate(map[string]any{"price": "abc"}).Apply(stored)

		expected := stored
		expected.Price = 0
		assert.Equal(t, expected, updated)
	})
}
