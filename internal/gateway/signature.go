package gateway

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"sort"
	"strings"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
)

const (
	pemHeader = "-----BEGIN PUBLIC KEY-----"
	pemFooter = "-----END PUBLIC KEY-----"
)

// SignatureVerifier authenticates gateway notifications against the
// configured RSA public key. A missing or unparseable key is a verification
// failure on use, not a constructor error, so a misconfigured deployment
// rejects callbacks instead of crashing the handler.
type SignatureVerifier struct {
	rawKey string
}

func NewSignatureVerifier(publicKey string) *SignatureVerifier {
	return &SignatureVerifier{rawKey: publicKey}
}

// CanonicalString builds the signed payload: sign and sign_type are excluded,
// fields with empty values dropped, remaining keys sorted ascending and
// joined as key=value pairs with &.
func CanonicalString(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if k == "sign" || k == "sign_type" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	return strings.Join(pairs, "&")
}

// Verify checks the notification signature. Any failure, from a missing sign
// field to a key that does not parse, comes back as ErrInvalidSignature.
func (v *SignatureVerifier) Verify(n *Notification) error {
	if n.Sign == "" {
		return apperrors.ErrInvalidSignature
	}

	key, err := v.publicKey()
	if err != nil {
		return err
	}

	sig, err := base64.StdEncoding.DecodeString(n.Sign)
	if err != nil {
		return apperrors.ErrInvalidSignature
	}

	digest := sha256.Sum256([]byte(CanonicalString(n.Fields)))
	if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], sig); err != nil {
		return apperrors.ErrInvalidSignature
	}
	return nil
}

func (v *SignatureVerifier) publicKey() (*rsa.PublicKey, error) {
	raw := strings.TrimSpace(v.rawKey)
	if raw == "" {
		return nil, apperrors.ErrInvalidSignature
	}

	// Keys stored without delimiters get wrapped with the standard markers.
	if !strings.Contains(raw, pemHeader) {
		raw = pemHeader + "\n" + raw + "\n" + pemFooter
	}

	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return nil, apperrors.ErrInvalidSignature
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, apperrors.ErrInvalidSignature
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, apperrors.ErrInvalidSignature
	}
	return rsaKey, nil
}
