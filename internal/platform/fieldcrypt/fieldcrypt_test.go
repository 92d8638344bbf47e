package fieldcrypt

import (
	"encoding/base64"
	"errors"
	"reflect"
	"testing"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	cipher, err := New("local-dev-passphrase")
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	return cipher
}

func TestNewRequiresPassphrase(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrNoKey) {
		t.Fatalf("want ErrNoKey, got %v", err)
	}
}

func TestEncryptStringRoundTrip(t *testing.T) {
	cipher := newTestCipher(t)

	sealed, err := cipher.EncryptString("pin the comment with the recipe")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if sealed == "pin the comment with the recipe" {
		t.Fatalf("ciphertext equals plaintext")
	}
	plain, err := cipher.DecryptString(sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "pin the comment with the recipe" {
		t.Fatalf("round trip = %q", plain)
	}
}

func TestEncryptStringFreshNoncePerCall(t *testing.T) {
	cipher := newTestCipher(t)

	first, err := cipher.EncryptString("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	second, err := cipher.EncryptString("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if first == second {
		t.Fatalf("two seals of the same input must differ")
	}
}

func TestDecryptStringRejectsBadInput(t *testing.T) {
	cipher := newTestCipher(t)

	if _, err := cipher.DecryptString("not base64 at all!!"); err == nil {
		t.Fatalf("want error for invalid base64")
	}
	short := base64.StdEncoding.EncodeToString([]byte("tiny"))
	if _, err := cipher.DecryptString(short); err == nil {
		t.Fatalf("want error for truncated blob")
	}

	sealed, err := cipher.EncryptString("intact")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	blob, _ := base64.StdEncoding.DecodeString(sealed)
	blob[len(blob)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(blob)
	if _, err := cipher.DecryptString(tampered); err == nil {
		t.Fatalf("want error for tampered ciphertext")
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	cipher := newTestCipher(t)
	other, err := New("a different passphrase")
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	sealed, err := cipher.EncryptString("secret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := other.DecryptString(sealed); err == nil {
		t.Fatalf("wrong key must not open the seal")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	cipher := newTestCipher(t)

	record := map[string]any{
		"id":      "vid-1",
		"script":  "open on the empty squat rack",
		"metrics": map[string]any{"views": float64(1200), "likes": float64(80)},
		"note":    nil,
	}
	if err := cipher.EncryptFields(record, []string{"script", "metrics", "note", "missing"}); err != nil {
		t.Fatalf("encrypt fields: %v", err)
	}

	if record["id"] != "vid-1" {
		t.Fatalf("unlisted field touched: %v", record["id"])
	}
	if record["script"] == "open on the empty squat rack" {
		t.Fatalf("script left in the clear")
	}
	marker, ok := record[encryptedFieldsKey].([]string)
	if !ok || !reflect.DeepEqual(marker, []string{"script", "metrics"}) {
		t.Fatalf("sealed-key marker = %v", record[encryptedFieldsKey])
	}

	if err := cipher.DecryptFields(record); err != nil {
		t.Fatalf("decrypt fields: %v", err)
	}
	if record["script"] != "open on the empty squat rack" {
		t.Fatalf("script round trip = %v", record["script"])
	}
	metrics, ok := record["metrics"].(map[string]any)
	if !ok || metrics["views"] != float64(1200) || metrics["likes"] != float64(80) {
		t.Fatalf("metrics round trip = %v", record["metrics"])
	}
	if _, present := record[encryptedFieldsKey]; present {
		t.Fatalf("marker must be removed after decrypt")
	}
}

func TestDecryptFieldsMarkerFromJSON(t *testing.T) {
	cipher := newTestCipher(t)

	record := map[string]any{"script": "open cold"}
	if err := cipher.EncryptFields(record, []string{"script"}); err != nil {
		t.Fatalf("encrypt fields: %v", err)
	}
	// A record that went through JSON carries the marker as []any.
	record[encryptedFieldsKey] = []any{"script"}

	if err := cipher.DecryptFields(record); err != nil {
		t.Fatalf("decrypt fields: %v", err)
	}
	if record["script"] != "open cold" {
		t.Fatalf("script round trip = %v", record["script"])
	}
}

func TestDecryptFieldsNoMarkerIsNoop(t *testing.T) {
	cipher := newTestCipher(t)

	record := map[string]any{"script": "never sealed"}
	if err := cipher.DecryptFields(record); err != nil {
		t.Fatalf("decrypt fields: %v", err)
	}
	if record["script"] != "never sealed" {
		t.Fatalf("plaintext record changed: %v", record["script"])
	}
}
