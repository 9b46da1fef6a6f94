package model

// Customer is a prefetched lookup record. The terminal never mutates it;
// profile upkeep happens server-side during invoice creation.
type Customer struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}
