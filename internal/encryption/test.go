package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// sealedHeader marks data sealed by TestEncryptor. It never starts with '{',
// so archives do not mistake a sealed snapshot for plain JSON.
var sealedHeader = []byte("CMISENC\x00")

var errNotSealed = errors.New("data was not sealed by the test encryptor")

// TestEncryptor seals snapshots without keys: the sealed form is
// sealedHeader followed by the payload with every byte inverted. Once Setup
// has recorded a passphrase, Unlock only accepts that passphrase, which lets
// the prompt paths of the app run without age keys on disk.
type TestEncryptor struct {
	mu         sync.Mutex
	passphrase string
	locked     bool
}

var _ Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.passphrase = passphrase
	e.locked = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if _, err := w.Write(sealedHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(invert(data)); err != nil {
		return fmt.Errorf("writing sealed snapshot: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (DecryptionContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.locked && passphrase != e.passphrase {
		return nil, fmt.Errorf("wrong passphrase")
	}
	return testDecryptionContext{}, nil
}

// IsConfigured is always true; the test encryptor has no keys to generate.
func (e *TestEncryptor) IsConfigured() bool {
	return true
}

type testDecryptionContext struct{}

func (testDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading sealed snapshot: %w", err)
	}
	if !bytes.HasPrefix(data, sealedHeader) {
		return errNotSealed
	}
	if _, err := w.Write(invert(data[len(sealedHeader):])); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func invert(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = ^b
	}
	return out
}
