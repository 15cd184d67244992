package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func validEntry(id, sku string) Entry {
	var e Entry
	e.Sys.ID = id
	e.Sys.CreatedAt = "2024-01-02T03:04:05Z"
	e.Sys.UpdatedAt = "2024-02-02T03:04:05Z"
	e.Fields = EntryFields{
		Sku:      strptr(sku),
		Name:     strptr("Mechanical Keyboard"),
		Brand:    strptr("Acme"),
		Model:    strptr("K-100"),
		Category: strptr("peripherals"),
		Color:    strptr("black"),
		Price:    49.9,
		Currency: strptr("USD"),
		Stock:    12,
	}
	return e
}

func TestToProductMapsAllFields(t *testing.T) {
	data, err := ToProduct(validEntry("e1", "SKU-1"))
	require.NoError(t, err)

	assert.Equal(t, "e1", data.ExternalID)
	assert.Equal(t, "SKU-1", data.Sku)
	assert.Equal(t, "Mechanical Keyboard", data.Name)
	assert.Equal(t, "Acme", data.Brand)
	assert.Equal(t, "K-100", data.Model)
	assert.Equal(t, "peripherals", data.Category)
	assert.Equal(t, "black", data.Color)
	assert.Equal(t, 12, data.Stock)
	require.NotNil(t, data.Price)
	assert.InDelta(t, 49.9, *data.Price, 0.0001)
	require.NotNil(t, data.Currency)
	assert.Equal(t, "USD", *data.Currency)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), data.ExternalCreatedAt.UTC())
	assert.Equal(t, time.Date(2024, 2, 2, 3, 4, 5, 0, time.UTC), data.ExternalUpdatedAt.UTC())
}

func TestToProductMissingRequiredField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
		field  string
	}{
		{"missing sku", func(e *Entry) { e.Fields.Sku = nil }, "sku"},
		{"empty name", func(e *Entry) { e.Fields.Name = strptr("") }, "name"},
		{"missing brand", func(e *Entry) { e.Fields.Brand = nil }, "brand"},
		{"missing model", func(e *Entry) { e.Fields.Model = nil }, "model"},
		{"missing category", func(e *Entry) { e.Fields.Category = nil }, "category"},
		{"missing color", func(e *Entry) { e.Fields.Color = nil }, "color"},
		{"missing stock", func(e *Entry) { e.Fields.Stock = nil }, "stock"},
		{"negative stock", func(e *Entry) { e.Fields.Stock = -3 }, "stock"},
		{"unparsable stock", func(e *Entry) { e.Fields.Stock = "plenty" }, "stock"},
		{"bad created date", func(e *Entry) { e.Sys.CreatedAt = "not-a-date" }, "sys.createdAt"},
		{"missing updated date", func(e *Entry) { e.Sys.UpdatedAt = "" }, "sys.updatedAt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := validEntry("e1", "SKU-1")
			tc.mutate(&e)
			_, err := ToProduct(e)
			require.Error(t, err)
			var merr *MappingError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tc.field, merr.Field)
		})
	}
}

func TestToProductOptionalPrice(t *testing.T) {
	e := validEntry("e1", "SKU-1")
	e.Fields.Price = nil
	e.Fields.Currency = strptr("USD")

	data, err := ToProduct(e)
	require.NoError(t, err)
	// absent price means unknown, and currency is meaningless without it
	assert.Nil(t, data.Price)
	assert.Nil(t, data.Currency)
}

func TestToProductPriceAsString(t *testing.T) {
	e := validEntry("e1", "SKU-1")
	e.Fields.Price = "129.50"

	data, err := ToProduct(e)
	require.NoError(t, err)
	require.NotNil(t, data.Price)
	assert.InDelta(t, 129.5, *data.Price, 0.0001)
}

func TestToProductUnparsablePrice(t *testing.T) {
	e := validEntry("e1", "SKU-1")
	e.Fields.Price = "cheap"

	_, err := ToProduct(e)
	var merr *MappingError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "price", merr.Field)
}
