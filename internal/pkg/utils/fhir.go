package utils

import (
	"petcare-billing-service/internal/pkg/constvars"
	"strings"
)

const historySegment = "/_history/"

// BuildReference returns "<resourceType>/<id>", or "" when id is empty.
func BuildReference(resourceType, id string) string {
	if id == "" {
		return ""
	}
	return resourceType + constvars.FhirReferenceSeparator + id
}

// ParseReferenceID returns the id segment of a "Kind/id" reference.
// A bare id is returned unchanged and version suffixes are ignored.
func ParseReferenceID(reference string) string {
	parts := referenceSegments(reference)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// ParseReferenceType returns the resource kind of a "Kind/id" reference, or ""
// for a bare id.
func ParseReferenceType(reference string) string {
	parts := referenceSegments(reference)
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

func referenceSegments(reference string) []string {
	reference = strings.TrimSpace(reference)
	if idx := strings.Index(reference, historySegment); idx >= 0 {
		reference = reference[:idx]
	}
	reference = strings.Trim(reference, constvars.FhirReferenceSeparator)
	if reference == "" {
		return nil
	}
	return strings.Split(reference, constvars.FhirReferenceSeparator)
}
