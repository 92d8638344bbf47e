// Package fieldcrypt encrypts selected record fields before they reach the
// store. Values are sealed with ChaCha20-Poly1305 under a key derived from a
// user passphrase; ciphertext is base64 so encrypted records stay
// JSON-serializable.
package fieldcrypt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// encryptedFieldsKey marks which keys of a record carry ciphertext, so
// DecryptFields can tell sealed values from plaintext ones.
const encryptedFieldsKey = "_encryptedFields"

var ErrNoKey = errors.New("fieldcrypt: no key configured")

type Cipher struct {
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// New derives a 256-bit key from the passphrase and returns a ready cipher.
func New(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, ErrNoKey
	}
	key := sha256.Sum256([]byte(passphrase))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: init cipher: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// EncryptString seals a single value. The nonce is prepended to the
// ciphertext and the whole blob is base64-encoded.
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("fieldcrypt: nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Cipher) DecryptString(encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: decode: %w", err)
	}
	if len(blob) < chacha20poly1305.NonceSizeX {
		return "", errors.New("fieldcrypt: ciphertext too short")
	}
	nonce, sealed := blob[:chacha20poly1305.NonceSizeX], blob[chacha20poly1305.NonceSizeX:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: open: %w", err)
	}
	return string(plain), nil
}

// EncryptFields seals the named fields of a record in place and stamps the
// record with the list of sealed keys. Fields absent from the record or
// holding nil are skipped. Non-string values are JSON-encoded before sealing.
func (c *Cipher) EncryptFields(record map[string]any, fields []string) error {
	var sealed []string
	for _, field := range fields {
		value, ok := record[field]
		if !ok || value == nil {
			continue
		}
		plaintext, err := encodeValue(value)
		if err != nil {
			return fmt.Errorf("fieldcrypt: field %q: %w", field, err)
		}
		ciphertext, err := c.EncryptString(plaintext)
		if err != nil {
			return fmt.Errorf("fieldcrypt: field %q: %w", field, err)
		}
		record[field] = ciphertext
		sealed = append(sealed, field)
	}
	if len(sealed) > 0 {
		record[encryptedFieldsKey] = sealed
	}
	return nil
}

// DecryptFields reverses EncryptFields using the record's sealed-key marker.
// Decrypted payloads that parse as JSON come back as their decoded value;
// anything else comes back as the raw string.
func (c *Cipher) DecryptFields(record map[string]any) error {
	fields := sealedFields(record)
	if len(fields) == 0 {
		return nil
	}
	for _, field := range fields {
		ciphertext, ok := record[field].(string)
		if !ok {
			continue
		}
		plaintext, err := c.DecryptString(ciphertext)
		if err != nil {
			return fmt.Errorf("fieldcrypt: field %q: %w", field, err)
		}
		record[field] = decodeValue(plaintext)
	}
	delete(record, encryptedFieldsKey)
	return nil
}

func encodeValue(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeValue(plaintext string) any {
	var decoded any
	if err := json.Unmarshal([]byte(plaintext), &decoded); err != nil {
		// Plain strings were stored unquoted; hand them back as-is.
		return plaintext
	}
	return decoded
}

func sealedFields(record map[string]any) []string {
	marker, ok := record[encryptedFieldsKey]
	if !ok {
		return nil
	}
	switch v := marker.(type) {
	case []string:
		return v
	case []any:
		fields := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				fields = append(fields, s)
			}
		}
		return fields
	default:
		return nil
	}
}
