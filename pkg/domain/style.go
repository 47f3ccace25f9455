package domain

// Style is an opaque style description. The model stores and compares it but
// never interprets it.
type Style string
