package exitcodes

// Category is the range an arbitrary process status falls into.
type Category int

const (
	CategoryReserved Category = iota
	CategorySuccess
	CategoryFailure
	CategoryUser
	CategorySoftware
	CategorySignal
)

var categoryNames = map[Category]string{
	CategoryReserved: "reserved",
	CategorySuccess:  "success",
	CategoryFailure:  "failure",
	CategoryUser:     "user",
	CategorySoftware: "software",
	CategorySignal:   "signal",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "reserved"
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return CategoryReserved, false
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{
		CategorySuccess,
		CategoryFailure,
		CategoryUser,
		CategorySoftware,
		CategorySignal,
		CategoryReserved,
	}
}

// Classify places any integer status, defined or not, into its range.
// Statuses outside every range (2-79, 120-128, 255 and beyond, negatives)
// are CategoryReserved.
func Classify(status int) Category {
	code := Code(status)
	switch {
	case code == OK:
		return CategorySuccess
	case code == NotOK:
		return CategoryFailure
	case IsUserError(code):
		return CategoryUser
	case IsSoftwareError(code):
		return CategorySoftware
	case IsSignal(code):
		return CategorySignal
	default:
		return CategoryReserved
	}
}
