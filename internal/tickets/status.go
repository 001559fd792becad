package tickets

type Status string

const (
	StatusPurchased Status = "PURCHASED"
	StatusCancelled Status = "CANCELLED"
	// StatusReserved is recognized for a future hold flow. No operation
	// in this service produces it.
	StatusReserved Status = "RESERVED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPurchased, StatusCancelled, StatusReserved:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanBeCancelled reports whether a ticket in this state may be cancelled.
func (s Status) CanBeCancelled() bool {
	return s == StatusPurchased
}

// OccupiesSeat reports whether a ticket in this state blocks its seat.
func (s Status) OccupiesSeat() bool {
	return s == StatusPurchased
}
