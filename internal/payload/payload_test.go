package payload

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(nil))
	assert.Nil(t, OptionalString(strPtr("")))
	assert.Nil(t, OptionalString(strPtr("   ")))
	assert.Equal(t, "via Roma 1", *OptionalString(strPtr("  via Roma 1 ")))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Pizzeria Da Michele":   "pizzeria-da-michele",
		"  Sushi & Co.  ":       "sushi-co",
		"Caffè Nero":            "caff-nero",
		"---":                   "",
		"Burger King #42 Milan": "burger-king-42-milan",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestFloatAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A Float `json:"a"`
		B Float `json:"b"`
		C Float `json:"c"`
		D Float `json:"d"`
		E Float `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 2.5, "b": "3.75", "c": "", "d": null}`), &body))

	assert.Equal(t, Float{Value: 2.5, Set: true}, body.A)
	assert.Equal(t, Float{Value: 3.75, Set: true}, body.B)
	assert.False(t, body.C.Set)
	assert.False(t, body.D.Set)
	assert.False(t, body.E.Set)

	assert.Equal(t, 30.0, body.C.Or(30))
	assert.Nil(t, body.D.Ptr())
	assert.Equal(t, 3.75, *body.B.Ptr())
}

func TestFloatRejectsGarbage(t *testing.T) {
	var f Float
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`true`), &f))
}

func TestIntFalsyDefaults(t *testing.T) {
	var body struct {
		Delivery Int `json:"delivery_time_min"`
		Max      Int `json:"max_attendees"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"delivery_time_min": "0", "max_attendees": 0}`), &body))

	assert.Equal(t, 30, body.Delivery.Or(30))
	assert.Nil(t, body.Max.NonZeroPtr())
	assert.Equal(t, 0, *body.Max.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"delivery_time_min": "45"}`), &body))
	assert.Equal(t, 45, body.Delivery.Or(30))
}

func TestJSONValue(t *testing.T) {
	v, err := JSONValue(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(v))

	v, err = JSONValue(json.RawMessage(`"{\"min_order\": 10}"`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"min_order": 10}`, string(v))

	v, err = JSONValue(json.RawMessage(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(v))

	_, err = JSONValue(json.RawMessage(`"not json"`))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = JSONValue(json.RawMessage(`""`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestCombineDateTime(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	got, err := CombineDateTime("2026-07-14", "21:30:00", rome)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 14, 21, 30, 0, 0, rome), got)
	assert.Equal(t, "2026-07-14T19:30:00Z", got.UTC().Format(time.RFC3339))

	_, err = CombineDateTime("2026-07-14", "25:00", time.UTC)
	assert.Error(t, err)
	_, err = CombineDateTime("14/07/2026", "21:30", time.UTC)
	assert.Error(t, err)
}

func TestClockHHMM(t *testing.T) {
	assert.Equal(t, "09:15", ClockHHMM("09:15:00"))
	assert.Equal(t, "09:15", ClockHHMM("09:15"))
	assert.Equal(t, "", ClockHHMM(""))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2026-03-01T10:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), got)

	got, err = ParseDateTime("2026-03-01T10:00:00+02:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 8, got.UTC().Hour())

	_, err = ParseDateTime("tomorrow", time.UTC)
	assert.Error(t, err)
}
