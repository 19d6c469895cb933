package domain

import (
	"fmt"
	"strings"
)

// SaveType selects which persistence strategy applies to an invoice.
// The set is open: adapters register new tags without touching existing ones,
// so parsing only normalizes the tag. Whether a tag is actually backed by a
// strategy is decided at resolution time.
type SaveType string

// Built-in tags.
const (
	SaveTypeFile    SaveType = "file"
	SaveTypeServer  SaveType = "server"
	SaveTypeLocalDB SaveType = "localdb"
)

// Extension tags shipped with Factura.
const (
	SaveTypePDF      SaveType = "pdf"
	SaveTypePostgres SaveType = "postgres"
	SaveTypeS3       SaveType = "s3"
)

// ParseSaveType normalizes a user-supplied tag (trim + lowercase).
func ParseSaveType(s string) (SaveType, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == "" {
		return "", fmt.Errorf("save type is required: %w", ErrInvalidInvoice)
	}
	return SaveType(tag), nil
}

func (t SaveType) String() string { return string(t) }
