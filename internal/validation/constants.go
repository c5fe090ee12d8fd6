package validation

// Schema names used as compiler resource ids
const (
	MachinesSchemaName = "machines.schema.json"
)

// Error messages
const (
	ErrMsgLoadSchema       = "failed to load schema"
	ErrMsgParseData        = "failed to parse JSON data"
	ErrMsgSchemaValidation = "schema validation failed"
)

// Custom struct validation tags
const (
	TagFinite = "finite"
)

// Field error messages returned by FormatValidationError
const (
	FieldMsgRequired = "This field is required"
	FieldMsgLen      = "Must have exactly %s elements"
	FieldMsgMax      = "Must be at most %s characters"
	FieldMsgMin      = "Must be at least %s"
	FieldMsgGT       = "Must be greater than %s"
	FieldMsgFinite   = "Must be a finite number"
	FieldMsgInvalid  = "Invalid value"
	FieldMsgFormat   = "Invalid request format"
	FieldKeyGeneral  = "error"
)
