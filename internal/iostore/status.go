package iostore

import (
	"fmt"

	"github.com/huangsam/repopulse/schema"
)

// GetStatus returns status information about the metric store.
func (ms *MetricStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(ms.backend),
		Connected:  ms.db != nil,
		TableSizes: make(map[string]int64),
	}
	if ms.db == nil {
		return status, nil
	}

	for _, table := range schema.AllTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, ms.backend))
		row := ms.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Rows: %d\n", status.TotalRows())
	fmt.Println("Table Sizes:")
	for _, table := range schema.AllTables {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
