package reservation

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether a reservation in this status holds its slot.
// Cancelled rows stay in the collection but reserve nothing.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Version is the language/subtitle variant of a screening.
type Version string

const (
	VersionVO     Version = "VO"
	VersionVOSTFR Version = "VOSTFR"
	VersionVF     Version = "VF"
)

func (v Version) String() string {
	return string(v)
}

func (v Version) IsValid() bool {
	switch v {
	case VersionVO, VersionVOSTFR, VersionVF:
		return true
	default:
		return false
	}
}

type TicketCategory string

const (
	CategoryUnder16 TicketCategory = "-16"
	CategoryUnder26 TicketCategory = "-26"
	CategoryStudent TicketCategory = "STUDENT"
	CategoryAdult   TicketCategory = "ADULT"
	CategorySenior  TicketCategory = "SENIOR"
)

// DefaultCategory is applied to freshly created pending reservations.
const DefaultCategory = CategoryAdult

// Flat per-seat rates in cents.
var unitPriceCents = map[TicketCategory]int64{
	CategoryUnder16: 700,
	CategoryUnder26: 800,
	CategoryStudent: 850,
	CategoryAdult:   1000,
	CategorySenior:  900,
}

func (c TicketCategory) String() string {
	return string(c)
}

func (c TicketCategory) IsValid() bool {
	_, ok := unitPriceCents[c]
	return ok
}

func (c TicketCategory) UnitPrice() Money {
	return NewMoney(unitPriceCents[c])
}

// PriceFor returns quantity times the category unit rate. The ticket price of
// a reservation is always derived through here, never stored independently.
func PriceFor(category TicketCategory, quantity int) (Money, error) {
	if !category.IsValid() {
		return Money{}, ErrInvalidTicketCategory
	}
	if quantity < 1 {
		return Money{}, ErrInvalidQuantity
	}
	return NewMoney(unitPriceCents[category] * int64(quantity)), nil
}

// PriceTable exposes the unit rates for display (ticket category pickers).
func PriceTable() map[TicketCategory]Money {
	table := make(map[TicketCategory]Money, len(unitPriceCents))
	for category, cents := range unitPriceCents {
		table[category] = NewMoney(cents)
	}
	return table
}
