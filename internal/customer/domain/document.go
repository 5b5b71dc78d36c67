package domain

import (
	"errors"
	"fmt"
	"strings"
)

type DocumentType string

const (
	DocumentCPF      DocumentType = "CPF"
	DocumentCNPJ     DocumentType = "CNPJ"
	DocumentRG       DocumentType = "RG"
	DocumentCNH      DocumentType = "CNH"
	DocumentPassport DocumentType = "PASSPORT"
	DocumentOther    DocumentType = "OTHER"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentCPF, DocumentCNPJ, DocumentRG, DocumentCNH, DocumentPassport, DocumentOther:
		return true
	default:
		return false
	}
}

func (t DocumentType) Label() string {
	switch t {
	case DocumentCPF:
		return "CPF"
	case DocumentCNPJ:
		return "CNPJ"
	case DocumentRG:
		return "RG"
	case DocumentCNH:
		return "CNH"
	case DocumentPassport:
		return "Passaporte"
	case DocumentOther:
		return "Outro"
	default:
		return ""
	}
}

// digitCount is the exact length CPF and CNPJ numbers must have once cleaned.
func (t DocumentType) digitCount() int {
	switch t {
	case DocumentCPF:
		return 11
	case DocumentCNPJ:
		return 14
	default:
		return 0
	}
}

var ErrInvalidDocumentNumber = errors.New("invalid_document_number")

// DocumentError reports a CPF or CNPJ whose cleaned number has the wrong length.
type DocumentError struct {
	Type   DocumentType
	Digits int
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s must contain exactly %d digits, got %d", e.Type, e.Type.digitCount(), e.Digits)
}

func (e *DocumentError) Is(target error) bool {
	return target == ErrInvalidDocumentNumber
}

// NormalizeDocument strips formatting from CPF and CNPJ numbers and enforces
// their length. Other document types are returned unchanged.
func NormalizeDocument(docType DocumentType, raw string) (string, error) {
	want := docType.digitCount()
	if want == 0 {
		return raw, nil
	}

	cleaned := onlyDigits(raw)
	if len(cleaned) != want {
		return "", &DocumentError{Type: docType, Digits: len(cleaned)}
	}
	return cleaned, nil
}

// onlyDigits keeps ASCII digits only.
func onlyDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
