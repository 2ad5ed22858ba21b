package logging

// Standardized field names for structured logging. These constants keep the
// application's log output consistent and easy to filter.
const (
	FieldFile        = "file_path"
	FieldStage       = "stage"
	FieldDestination = "destination"
	FieldCount       = "count"
	FieldRole        = "role"
	FieldColumn      = "column"
	FieldCategory    = "category"
	FieldProvider    = "provider"
	FieldDelimiter   = "delimiter"
	FieldError       = "error"
)
