package schema

// StoreStatus holds status information about the metric store.
type StoreStatus struct {
	Backend    string           `json:"backend"`
	Connected  bool             `json:"connected"`
	TableSizes map[string]int64 `json:"table_sizes"`
}

// TotalRows returns the sum of all table sizes.
func (s StoreStatus) TotalRows() int64 {
	var total int64
	for _, n := range s.TableSizes {
		total += n
	}
	return total
}
