package utils

// NewInviteToken returns an opaque 128-bit invitation token, hex
// encoded (32 characters). Tokens are unique per invitation and are
// the only credential a guest needs to preview and accept an invite.
func NewInviteToken() (string, error) {
	return randomHex(16)
}
