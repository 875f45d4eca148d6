package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "grosspay", NormalizeKey("Gross Pay"))
	assert.Equal(t, "grosspay", NormalizeKey("gross_pay"))
	assert.Equal(t, "grosspay", NormalizeKey("GROSS-PAY:"))
	assert.Equal(t, "others", NormalizeKey("Others"))
	assert.Equal(t, "others", NormalizeKey(" O.t.h.e.r.s! "))
	assert.Equal(t, "ppreference", NormalizeKey("PP Reference"))
	assert.Equal(t, "", NormalizeKey("!!!"))
}

func TestSearchKeyNested(t *testing.T) {
	var data any
	require.NoError(t, json.Unmarshal([]byte(`{"a": [{"Gross Pay": "100.50"}]}`), &data))

	got := SearchKey("Gross Pay", data)
	assert.Equal(t, []any{"100.50"}, got)
}

func TestSearchKeyAnyDepthAndSpelling(t *testing.T) {
	var data any
	require.NoError(t, json.Unmarshal([]byte(`{
		"records": [
			{"gross_pay": "1.00", "details": {"history": [{"GROSS PAY": "2.00"}]}},
			{"Pay Rate": "9.99"}
		],
		"Gross-Pay": "3.00"
	}`), &data))

	got := SearchKey("Gross Pay", data)
	assert.Len(t, got, 3)
	assert.ElementsMatch(t, []any{"1.00", "2.00", "3.00"}, got)
}

func TestSearchKeyScalarRoot(t *testing.T) {
	assert.Empty(t, SearchKey("Gross Pay", "just a string"))
	assert.Empty(t, SearchKey("Gross Pay", nil))
}

func TestRequiredFieldsShape(t *testing.T) {
	require.Len(t, RequiredFields, 24)
	assert.Equal(t, "Agency", RequiredFields[0])
	assert.Equal(t, "PP Reference", RequiredFields[len(RequiredFields)-1])
	assert.Contains(t, RequiredFields, "Gross Pay")
	assert.Contains(t, RequiredFields, "Person Name")
}
