package gokaru

import "golang.org/x/exp/slices"

// SourceType distinguishes raw files from images on the storage service.
type SourceType string

const (
	SourceTypeFile  SourceType = "file"
	SourceTypeImage SourceType = "image"
)

var sourceTypes = []SourceType{SourceTypeFile, SourceTypeImage}

// SourceTypes returns every known source type.
func SourceTypes() []SourceType {
	return slices.Clone(sourceTypes)
}

// ValidateSourceType reports an ArgumentError for an empty value and a
// DomainError for a value outside SourceTypes.
func ValidateSourceType(t SourceType) error {
	if t == "" {
		return emptyArgument("source type")
	}
	if !slices.Contains(sourceTypes, t) {
		return &DomainError{Field: "source type", Value: string(t)}
	}
	return nil
}

func (t SourceType) String() string {
	return string(t)
}
