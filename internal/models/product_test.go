package models_test

import (
	"encoding/json"
	"testing"

	"productstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecord_SerializesExactlyFiveFields(t *testing.T) {
	p := models.Product{ID: 1, Name: "Widget", Description: "A widget", Price: 9.99, Qty: 10}

	body, err := json.Marshal(models.ToRecord(p))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Len(t, fields, 5)
	assert.Equal(t, float64(1), fields["id"])
	assert.Equal(t, "Widget", fields["name"])
	assert.Equal(t, "A widget", fields["description"])
	assert.Equal(t, 9.99, fields["price"])
	assert.Equal(t, float64(10), fields["qty"])
}

func TestToRecords_PreservesOrder(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Widget"},
		{ID: 2, Name: "Gadget"},
	}

	records := models.ToRecords(products)
	require.Len(t, records, 2)
	assert.Equal(t, uint(1), records[0].ID)
	assert.Equal(t, "Gadget", records[1].Name)
}

func TestToRecords_EmptyListEncodesAsArray(t *testing.T) {
	body, err := json.Marshal(models.ToRecords(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestProduct_ApplyOverwritesAllFields(t *testing.T) {
	p := models.Product{ID: 7, Name: "Old", Description: "Old desc", Price: 1, Qty: 1}

	p.Apply(models.ProductInput{Name: "New", Description: "", Price: 2.5, Qty: 0})

	assert.Equal(t, models.Product{ID: 7, Name: "New", Description: "", Price: 2.5, Qty: 0}, p)
}

func TestSchema_ListsProduct(t *testing.T) {
	schema := models.Schema()
	require.Len(t, schema, 1)
	assert.IsType(t, &models.Product{}, schema[0])
}
