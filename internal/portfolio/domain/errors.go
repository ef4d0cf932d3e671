package domain

import "fmt"

// SchemaError 输入集合缺失必需字段，整批计算无法继续
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: field %q %s", e.Field, e.Reason)
}

// NewMissingFieldError 必需字段在整个输入集合中缺失
func NewMissingFieldError(field string) *SchemaError {
	return &SchemaError{Field: field, Reason: "is absent from the entire input collection"}
}
