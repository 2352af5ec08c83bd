package models

// Table is a dining table. IsAvailable is flipped to false when an
// order is checked out against the table; the flip is best-effort and
// not transactional with order creation.
type Table struct {
	ID          int64 `json:"id"`
	TableNumber int   `json:"table_number"`
	Capacity    int   `json:"capacity"`
	IsAvailable bool  `json:"is_available"`
}
