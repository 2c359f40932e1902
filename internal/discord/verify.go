package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Verifier checks the Ed25519 signature Discord attaches to every interaction.
type Verifier struct {
	key ed25519.PublicKey
}

// NewVerifier parses the application's hex-encoded public key.
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key: want %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return &Verifier{key: ed25519.PublicKey(raw)}, nil
}

// Verify reports whether signatureHex signs timestamp followed by body.
func (v *Verifier) Verify(signatureHex, timestamp string, body []byte) bool {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(v.key, msg, sig)
}
