package utils

import "strings"

// Patch overwrites *dst with *src when src is non-nil. A nil src means the
// client omitted the field and the stored value stays unchanged.
func Patch[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// PatchPtr is Patch for optional (nullable) entity fields.
func PatchPtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// TrimPtr trims an optional string in place and turns blank into nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func Ptr[T any](v T) *T {
	return &v
}
