package logger

// Exported for white-box tests of the error formatting.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// EntryMessage returns the message of a collected entry.
func EntryMessage(e errorEntry) string { return e.message }

// EntryMetadata returns the metadata of a collected entry.
func EntryMetadata(e errorEntry) map[string]any { return e.metadata }
