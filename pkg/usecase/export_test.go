package usecase

// Export unexported functions for testing
var (
	FilterEntriesForTest               = filterEntries
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
)
