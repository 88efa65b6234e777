package models

// Document is a stored record. Collections hold caller-supplied JSON objects, so only the
// fields listed below are interpreted by the server; everything else is passed through.
type Document map[string]interface{}

// Field names used in filters, sorts and projections.
const (
	FieldID = "_id"

	// users
	FieldEmail = "email"

	// products
	FieldTitle       = "title"
	FieldPriceMin    = "price_min"
	FieldPriceMax    = "price_max"
	FieldCategory    = "category"
	FieldImage       = "image"
	FieldDescription = "description"
	FieldCreatedAt   = "created_at"
	FieldName        = "name"
	FieldPrice       = "price"

	// bids
	FieldProduct    = "product"
	FieldBuyerEmail = "buyer_email"
	FieldBidPrice   = "bid_price"
)

// Lookup returns the value stored under key, or nil.
func (d Document) Lookup(key string) interface{} {
	if d == nil {
		return nil
	}
	return d[key]
}
