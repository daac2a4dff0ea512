package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that are empty or could reach outside the
// asset directories: path separators, dots and NUL.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
