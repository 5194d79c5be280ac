package views

// badgeColors maps order, shipment, verification and account statuses to a
// colour. Shared names (PENDING, REJECTED...) mean the same thing everywhere.
var badgeColors = map[string]string{
	"PENDING":    "yellow",
	"ACCEPTED":   "blue",
	"ASSIGNED":   "cyan",
	"IN_TRANSIT": "purple",
	"PICKED_UP":  "purple",
	"SHIPPED":    "indigo",
	"DELIVERED":  "green",
	"COMPLETED":  "green",
	"VERIFIED":   "green",
	"ACTIVE":     "green",
	"REJECTED":   "red",
	"CANCELLED":  "red",
	"SUSPENDED":  "orange",
}

// BadgeColor is the colour name for status, gray when unknown.
func BadgeColor(status string) string {
	if c, ok := badgeColors[status]; ok {
		return c
	}
	return "gray"
}

// StatusBadge is the CSS class list for a status pill.
func StatusBadge(status string) string {
	c := BadgeColor(status)
	return "badge bg-" + c + "-100 text-" + c + "-800"
}
