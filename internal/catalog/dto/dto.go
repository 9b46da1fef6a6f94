package dto

// Filters describes one filter/sort pass over the catalog snapshot.
type Filters struct {
	Query    string // case-insensitive substring on product name
	Category string // exact category match, empty means all
	SortBy   string // name, name_asc, name_desc, price_asc, price_desc, stock_asc, stock_desc
}
