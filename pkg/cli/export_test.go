package cli

var (
	PrintResources  = printResources
	PrintSyncResult = printSyncResult
)
