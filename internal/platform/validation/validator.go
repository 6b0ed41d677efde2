package validation

// Validator returns field errors keyed by json field name, or nil when valid.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
