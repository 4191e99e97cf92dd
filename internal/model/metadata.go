package model

// Object and field identifiers used when resolving schema metadata.
const (
	ObjectTypeInvoice  = "invoice"
	FieldInvoiceStatus = "status"
)

// ObjectInfo is the result of a schema lookup for an object type.
type ObjectInfo struct {
	DefaultRecordTypeID string
}

// PicklistValue is one entry of a remotely resolved picklist.
type PicklistValue struct {
	Label string
	Value string
}

// Picklist holds the enumerated values of a field, in remote order.
type Picklist struct {
	Values []PicklistValue
}

// StatusOption is one entry of the filter dropdown.
type StatusOption struct {
	Label string
	Value string
}
