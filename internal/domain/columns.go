package domain

// Source column headers, exactly as they appear in the dataset.
const (
	ColTicketID      = "Ticket ID"
	ColCustomerName  = "Customer Name"
	ColProduct       = "Product Purchased"
	ColType          = "Ticket Type"
	ColPriority      = "Ticket Priority"
	ColStatus        = "Ticket Status"
	ColChannel       = "Ticket Channel"
	ColPurchaseDate  = "Date of Purchase"
	ColFirstResponse = "First Response Time"
	ColResolution    = "Time to Resolution"
	ColSatisfaction  = "Customer Satisfaction Rating"
)
