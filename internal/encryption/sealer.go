package encryption

import (
	"bytes"
	"fmt"
	"sync"

	"cmis-go/internal/archive"
)

// PassphraseFunc supplies the passphrase that unlocks the private key.
type PassphraseFunc func() (string, error)

// Sealer adapts an Encryptor to archive.Sealer. The private key is unlocked
// on the first Unseal and kept for the lifetime of the Sealer.
type Sealer struct {
	enc        Encryptor
	passphrase PassphraseFunc

	mu sync.Mutex
	dc DecryptionContext
}

var _ archive.Sealer = (*Sealer)(nil)

// NewSealer creates a Sealer. passphrase is only called when a sealed
// snapshot is read; when nil, the key is unlocked with an empty passphrase.
func NewSealer(enc Encryptor, passphrase PassphraseFunc) *Sealer {
	return &Sealer{enc: enc, passphrase: passphrase}
}

func (s *Sealer) Seal(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.enc.Encrypt(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Sealer) Unseal(data []byte) ([]byte, error) {
	dc, err := s.unlock()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.Decrypt(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Sealer) unlock() (DecryptionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dc != nil {
		return s.dc, nil
	}
	var p string
	if s.passphrase != nil {
		var err error
		if p, err = s.passphrase(); err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
	}
	dc, err := s.enc.Unlock(p)
	if err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}
	s.dc = dc
	return dc, nil
}
