package gokaru

// validateCredentials checks a (type, category, filename) key in order.
func validateCredentials(t SourceType, category, filename string) error {
	if err := ValidateSourceType(t); err != nil {
		return err
	}
	if category == "" {
		return emptyArgument("category")
	}
	if filename == "" {
		return emptyArgument("filename")
	}
	return nil
}

// validateThumbnailName checks the name fields of a thumbnail in order.
func validateThumbnailName(category, filename, extension string) error {
	if category == "" {
		return emptyArgument("category")
	}
	if filename == "" {
		return emptyArgument("filename")
	}
	if extension == "" {
		return emptyArgument("extension")
	}
	return nil
}
