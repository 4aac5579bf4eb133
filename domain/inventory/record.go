// Package inventory holds the inventory record and the rules that turn an
// untyped inbound payload into a well-formed record.
package inventory

// Attribute names as stored in the table and exchanged over JSON.
const (
	AttrID           = "id"
	AttrInventoryID  = "inventory_id"
	AttrCreatedAt    = "created_at"
	AttrPrice        = "price"
	AttrQuantity     = "quantity"
	AttrExchangeType = "exchange_type"
	AttrStatus       = "status"
	AttrUser         = "user"
	AttrUserID       = "user_id"
	AttrRoleUser     = "role_user"

	// legacyAttrID is accepted on input as an alias of AttrID.
	legacyAttrID = "_id"
)

// Record is the canonical inventory entity. ExchangeType, Status and
// User.RoleUser are opaque and stored exactly as received.
type Record struct {
	ID           string  `json:"id" dynamodbav:"id"`
	InventoryID  float64 `json:"inventory_id" dynamodbav:"inventory_id"`
	CreatedAt    string  `json:"created_at" dynamodbav:"created_at"`
	Price        float64 `json:"price" dynamodbav:"price"`
	Quantity     float64 `json:"quantity" dynamodbav:"quantity"`
	ExchangeType any     `json:"exchange_type" dynamodbav:"exchange_type"`
	Status       any     `json:"status" dynamodbav:"status"`
	User         User    `json:"user" dynamodbav:"user"`
}

// User is the nested owner of a record.
type User struct {
	UserID   float64 `json:"user_id" dynamodbav:"user_id"`
	RoleUser any     `json:"role_user" dynamodbav:"role_user"`
}

// RecordUpdate is a partial update. A nil field is left untouched in
// storage. The identifier is never part of an update.
type RecordUpdate struct {
	InventoryID  *float64
	CreatedAt    *string
	Price        *float64
	Quantity     *float64
	ExchangeType *Opaque
	Status       *Opaque
	User         *User
}

// Opaque wraps a pass-through value so that a present null can be told
// apart from an absent field.
type Opaque struct {
	Value any
}

// UpdateField is one attribute assignment of a RecordUpdate.
type UpdateField struct {
	Name  string
	Value any
}

// Fields lists the assignments carried by the update in a stable order.
func (u RecordUpdate) Fields() []UpdateField {
	var fields []UpdateField
	if u.InventoryID != nil {
		fields = append(fields, UpdateField{AttrInventoryID, *u.InventoryID})
	}
	if u.CreatedAt != nil {
		fields = append(fields, UpdateField{AttrCreatedAt, *u.CreatedAt})
	}
	if u.Price != nil {
		fields = append(fields, UpdateField{AttrPrice, *u.Price})
	}
	if u.Quantity != nil {
		fields = append(fields, UpdateField{AttrQuantity, *u.Quantity})
	}
	if u.ExchangeType != nil {
		fields = append(fields, UpdateField{AttrExchangeType, u.ExchangeType.Value})
	}
	if u.Status != nil {
		fields = append(fields, UpdateField{AttrStatus, u.Status.Value})
	}
	if u.User != nil {
		fields = append(fields, UpdateField{AttrUser, *u.User})
	}
	return fields
}

// IsEmpty reports whether the update carries no assignment.
func (u RecordUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Apply returns a copy of r with the update's fields replaced.
func (u RecordUpdate) Apply(r Record) Record {
	if u.InventoryID != nil {
		r.InventoryID = *u.InventoryID
	}
	if u.CreatedAt != nil {
		r.CreatedAt = *u.CreatedAt
	}
	if u.Price != nil {
		r.Price = *u.Price
	}
	if u.Quantity != nil {
		r.Quantity = *u.Quantity
	}
	if u.ExchangeType != nil {
		r.ExchangeType = u.ExchangeType.Value
	}
	if u.Status != nil {
		r.Status = u.Status.Value
	}
	if u.User != nil {
		r.User = *u.User
	}
	return r
}

// IDFrom returns the identifier carried by a payload, if any.
func IDFrom(payload map[string]any) (string, bool) {
	for _, key := range []string{AttrID, legacyAttrID} {
		if id, ok := payload[key].(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
