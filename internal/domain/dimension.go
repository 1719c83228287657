package domain

// Dimension identifies a categorical column tickets can be grouped by.
type Dimension string

const (
	DimensionProduct  Dimension = "product"
	DimensionType     Dimension = "type"
	DimensionPriority Dimension = "priority"
	DimensionStatus   Dimension = "status"
	DimensionChannel  Dimension = "channel"
)

// Dimensions lists every valid group-by dimension.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionProduct,
		DimensionType,
		DimensionPriority,
		DimensionStatus,
		DimensionChannel,
	}
}

// Valid reports whether d names a known dimension.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionProduct, DimensionType, DimensionPriority, DimensionStatus, DimensionChannel:
		return true
	}
	return false
}

// DimensionValue returns the ticket's value for dim. ok is false when the
// value is missing; missing values group under a nil key downstream.
func (t *Ticket) DimensionValue(dim Dimension) (string, bool) {
	var val string
	switch dim {
	case DimensionProduct:
		val = t.Product
	case DimensionType:
		val = t.Type
	case DimensionPriority:
		val = t.Priority
	case DimensionStatus:
		val = t.Status
	case DimensionChannel:
		val = t.Channel
	}
	return val, val != ""
}
