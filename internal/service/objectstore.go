package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/cuongnguyenngoc/web3mail/internal/client"
	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

// ObjectStore encrypts payloads with a process-wide AES-256-GCM key before
// handing them to a content-addressed backend. The key is derived once at
// startup; without it every stored object is unreadable, so missing key
// material is a configuration error, not a runtime fault.
type ObjectStore struct {
	backend client.StorageBackend
	aead    cipher.AEAD
}

func NewObjectStore(backend client.StorageBackend, passphrase, keySalt string) (*ObjectStore, error) {
	if passphrase == "" || keySalt == "" {
		return nil, fmt.Errorf("%w: storage passphrase and key salt must be set", common.ErrConfiguration)
	}

	key := argon2.IDKey([]byte(passphrase), []byte(keySalt), 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: init cipher: %v", common.ErrConfiguration, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: init gcm: %v", common.ErrConfiguration, err)
	}

	return &ObjectStore{
		backend: backend,
		aead:    aead,
	}, nil
}

// Put encrypts plaintext and submits the ciphertext to the backend. The
// returned handle comes from the backend itself; a backend failure surfaces
// as an error, never as a fabricated handle.
func (s *ObjectStore) Put(ctx context.Context, plaintext []byte) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// nonce is prepended so Get can decrypt from the handle alone
	ciphertext := s.aead.Seal(nonce, nonce, plaintext, nil)

	cid, err := s.backend.Add(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("store ciphertext: %w", err)
	}

	return cid, nil
}

func (s *ObjectStore) Get(ctx context.Context, cid string) ([]byte, error) {
	data, err := s.backend.Cat(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("fetch ciphertext: %w", err)
	}

	if len(data) < nonceSize {
		return nil, fmt.Errorf("%w: object %s is truncated", common.ErrDecryptionFailed, cid)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: object %s", common.ErrDecryptionFailed, cid)
	}

	return plaintext, nil
}
