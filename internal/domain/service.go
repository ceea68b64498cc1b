package domain

// Service represents a bookable salon offering
type Service struct {
	ID                 int64
	Name               string
	DurationMin        int
	BufferBeforeMin    int
	BufferAfterMin     int
	Price              float64
	RequiresPrepayment bool
	IsActive           bool
	SlotIntervalMin    *int // NULL = use global setting
}

// Staff represents a person who can be booked
type Staff struct {
	ID              int64
	Name            string
	IsActive        bool
	SlotIntervalMin *int // NULL = use service or global setting
}
