package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityAdjustment(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		next     int
		kind     TransactionType
		quantity int
		ok       bool
	}{
		{name: "increase is a purchase", current: 80, next: 100, kind: TransactionPurchase, quantity: 20, ok: true},
		{name: "decrease is usage", current: 100, next: 80, kind: TransactionUsage, quantity: 20, ok: true},
		{name: "down to zero", current: 5, next: 0, kind: TransactionUsage, quantity: 5, ok: true},
		{name: "unchanged", current: 7, next: 7, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, quantity, ok := QuantityAdjustment(tt.current, tt.next)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.quantity, quantity)
		})
	}
}

func TestMailTypeValid(t *testing.T) {
	assert.True(t, MailTypeParcel.Valid())
	assert.True(t, MailTypeLetter.Valid())
	assert.True(t, MailTypeDocument.Valid())
	assert.False(t, MailType("Parcel").Valid())
	assert.False(t, MailType("").Valid())
}

func TestWeightUnmarshal(t *testing.T) {
	tests := []struct {
		body  string
		want  Weight
		about string
	}{
		{about: "absent", body: `{}`, want: Weight{}},
		{about: "null", body: `{"weight":null}`, want: Weight{}},
		{about: "number", body: `{"weight":2.5}`, want: NewWeight(2.5)},
		{about: "numeric string", body: `{"weight":" 3 "}`, want: NewWeight(3)},
		{about: "negative", body: `{"weight":-1}`, want: NewWeight(-1)},
		{about: "text", body: `{"weight":"heavy"}`, want: Weight{Set: true}},
		{about: "empty string", body: `{"weight":""}`, want: Weight{Set: true}},
		{about: "bool", body: `{"weight":true}`, want: Weight{Set: true}},
	}

	for _, tt := range tests {
		t.Run(tt.about, func(t *testing.T) {
			var req CreateMailRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Weight)
		})
	}
}

func TestClerkJSONHidesPassword(t *testing.T) {
	data, err := json.Marshal(Clerk{ID: 1, Email: "a@b.co", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "password")
}
