// Package sealed provides the age encryption used for name indexes that are
// stored encrypted at rest.
//
// Ciphertext is base64 text so a sealed index is still a text file and can
// be staged and shipped the same way as a plaintext one.
package sealed

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
)

// Keypair holds an age X25519 keypair.
type Keypair struct {
	// PrivateKey is in AGE-SECRET-KEY-1... form and must not be logged.
	PrivateKey string
	// PublicKey is in age1... form.
	PublicKey string
}

// GenerateKeypair creates a new X25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}
	return &Keypair{
		PrivateKey: identity.String(),
		PublicKey:  identity.Recipient().String(),
	}, nil
}

// Encrypt seals plaintext to every recipient and returns base64 ciphertext.
func Encrypt(plaintext []byte, recipientKeys []string) ([]byte, error) {
	if len(recipientKeys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var ciphertext bytes.Buffer
	w, err := age.Encrypt(&ciphertext, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(ciphertext.Len()))
	base64.StdEncoding.Encode(out, ciphertext.Bytes())
	return out, nil
}

// Decrypt opens base64 ciphertext produced by Encrypt with privateKey.
func Decrypt(ciphertext []byte, privateKey string) ([]byte, error) {
	identity, err := age.ParseX25519Identity(strings.TrimSpace(privateKey))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(ciphertext)))
	if err != nil {
		return nil, fmt.Errorf("decoding base64 ciphertext: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	return plaintext, nil
}

// NewEncrypter returns a function sealing to recipientKeys. The keys are
// validated immediately.
func NewEncrypter(recipientKeys []string) (func([]byte) ([]byte, error), error) {
	if len(recipientKeys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	for _, key := range recipientKeys {
		if err := ParsePublicKey(key); err != nil {
			return nil, err
		}
	}
	keys := append([]string(nil), recipientKeys...)
	return func(plaintext []byte) ([]byte, error) {
		return Encrypt(plaintext, keys)
	}, nil
}

// NewDecrypter returns a function opening ciphertext with privateKey.
func NewDecrypter(privateKey string) (func([]byte) ([]byte, error), error) {
	if err := ParsePrivateKey(privateKey); err != nil {
		return nil, err
	}
	return func(ciphertext []byte) ([]byte, error) {
		return Decrypt(ciphertext, privateKey)
	}, nil
}

// ParsePublicKey validates an age public key.
func ParsePublicKey(publicKey string) error {
	if _, err := age.ParseX25519Recipient(strings.TrimSpace(publicKey)); err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}
	return nil
}

// ParsePrivateKey validates an age private key.
func ParsePrivateKey(privateKey string) error {
	if _, err := age.ParseX25519Identity(strings.TrimSpace(privateKey)); err != nil {
		return fmt.Errorf("invalid age private key: %w", err)
	}
	return nil
}

// LoadIdentityFile reads the first private key from an age identity file as
// written by age-keygen or `assetindex keygen`. Comment lines are skipped.
func LoadIdentityFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read identity file %s: %w", path, err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ParsePrivateKey(line); err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return line, nil
	}
	return "", fmt.Errorf("no identity found in %s", path)
}

// FormatIdentityFile renders kp in age identity file form.
func FormatIdentityFile(kp *Keypair) string {
	return "# public key: " + kp.PublicKey + "\n" + kp.PrivateKey + "\n"
}
