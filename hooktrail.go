package hooktrail

var (
	VERSION = "dev"
	COMMIT  = "unknown"
)
