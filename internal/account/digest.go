package account

// Digest computes the rolling int32 checksum used as the password digest.
// This is NOT a security boundary: it exists only to avoid storing the
// plain text and stays byte-compatible with accounts persisted by earlier
// builds. The store is a private per-device file; anyone who can read it
// can already read everything in it.
func Digest(password string) int32 {
	var h int32
	for _, ch := range password {
		h = (h << 5) - h + int32(ch)
	}
	return h
}
