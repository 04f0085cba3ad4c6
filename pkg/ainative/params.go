package ainative

// Bool returns a pointer to v, for optional boolean request fields whose
// server-side default is true (e.g. include_metadata on vector search).
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to v, for optional string request fields where
// the empty string is a meaningful value (e.g. clearing a description).
func String(v string) *string {
	return &v
}
