package auction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseValueKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ValueKind
		wantErr bool
	}{
		{"", KindString, false},
		{"string", KindString, false},
		{"INT", KindInt, false},
		{"integer", KindInt, false},
		{"float", KindString, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValueKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	v, err := ParseValue("1000", KindString)
	require.NoError(t, err)
	assert.Equal(t, "1000", v.Interface())

	v, err = ParseValue(" 1000 ", KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v.Interface())

	_, err = ParseValue("ten", KindInt)
	assert.Error(t, err)
}

func TestFieldValueUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    FieldValue
		wantErr bool
	}{
		{"string", `"Vintage Watch"`, StringValue("Vintage Watch"), false},
		{"numeric string stays string", `"1000"`, StringValue("1000"), false},
		{"integer", `1500`, IntValue(1500), false},
		{"negative integer", `-3`, IntValue(-3), false},
		{"float rejected", `12.5`, FieldValue{}, true},
		{"bool rejected", `true`, FieldValue{}, true},
		{"null rejected", `null`, FieldValue{}, true},
		{"object rejected", `{"a":1}`, FieldValue{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FieldValue
			err := json.Unmarshal([]byte(tt.body), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldValueInRequestBody(t *testing.T) {
	t.Parallel()

	var body struct {
		Key   string     `json:"key"`
		Value FieldValue `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"key":"start_price","value":1000}`), &body))

	assert.Equal(t, "start_price", body.Key)
	assert.Equal(t, KindInt, body.Value.Kind)

	out, err := json.Marshal(body.Value)
	require.NoError(t, err)
	assert.JSONEq(t, `1000`, string(out))
}

func TestFilterDocument(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.D{}, Filter{}.Document())
	assert.Equal(t, "{}", Filter{}.String())

	f := NewFilter("title", StringValue("Vintage Watch"))
	assert.Equal(t, bson.D{{Key: "title", Value: "Vintage Watch"}}, f.Document())
	assert.Equal(t, "title = Vintage Watch", f.String())

	f = NewFilter("start_price", IntValue(1000))
	assert.Equal(t, bson.D{{Key: "start_price", Value: int64(1000)}}, f.Document())
}
