package catalog

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

// ProductData is the mapped, store-ready shape of one external record.
// System timestamps (created/updated/lastSync) are not part of it; those
// belong to the engine and the store.
type ProductData struct {
	ExternalID        string
	Sku               string
	Name              string
	Brand             string
	Model             string
	Category          string
	Color             string
	Price             *float64
	Currency          *string
	Stock             int
	ExternalCreatedAt time.Time
	ExternalUpdatedAt time.Time
}

// ToProduct maps a raw entry to ProductData. It is pure: no I/O, no
// clock reads. A missing or unparsable required field yields a
// MappingError naming the field; price and currency stay optional, and
// currency is dropped when no price is present.
func ToProduct(e Entry) (ProductData, error) {
	var data ProductData

	if e.Sys.ID == "" {
		return data, &MappingError{ExternalID: e.Sys.ID, Field: "sys.id"}
	}
	data.ExternalID = e.Sys.ID

	var err error
	if data.Sku, err = requiredString(e, e.Fields.Sku, "sku"); err != nil {
		return data, err
	}
	if data.Name, err = requiredString(e, e.Fields.Name, "name"); err != nil {
		return data, err
	}
	if data.Brand, err = requiredString(e, e.Fields.Brand, "brand"); err != nil {
		return data, err
	}
	if data.Model, err = requiredString(e, e.Fields.Model, "model"); err != nil {
		return data, err
	}
	if data.Category, err = requiredString(e, e.Fields.Category, "category"); err != nil {
		return data, err
	}
	if data.Color, err = requiredString(e, e.Fields.Color, "color"); err != nil {
		return data, err
	}

	if e.Fields.Stock == nil {
		return data, &MappingError{ExternalID: e.Sys.ID, Field: "stock"}
	}
	stock, err := cast.ToIntE(e.Fields.Stock)
	if err != nil || stock < 0 {
		return data, &MappingError{ExternalID: e.Sys.ID, Field: "stock"}
	}
	data.Stock = stock

	if e.Fields.Price != nil {
		price, err := cast.ToFloat64E(e.Fields.Price)
		if err != nil {
			return data, &MappingError{ExternalID: e.Sys.ID, Field: "price"}
		}
		data.Price = &price
		if e.Fields.Currency != nil && *e.Fields.Currency != "" {
			currency := *e.Fields.Currency
			data.Currency = &currency
		}
	}

	if data.ExternalCreatedAt, err = requiredInstant(e, e.Sys.CreatedAt, "sys.createdAt"); err != nil {
		return data, err
	}
	if data.ExternalUpdatedAt, err = requiredInstant(e, e.Sys.UpdatedAt, "sys.updatedAt"); err != nil {
		return data, err
	}

	return data, nil
}

func requiredString(e Entry, v *string, field string) (string, error) {
	if v == nil || *v == "" {
		return "", &MappingError{ExternalID: e.Sys.ID, Field: field}
	}
	return *v, nil
}

func requiredInstant(e Entry, v string, field string) (time.Time, error) {
	if v == "" {
		return time.Time{}, &MappingError{ExternalID: e.Sys.ID, Field: field}
	}
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return time.Time{}, &MappingError{ExternalID: e.Sys.ID, Field: field}
	}
	return t, nil
}
