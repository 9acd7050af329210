package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockEncryptor is a testify mock for encryption.Encryptor, used to
// exercise the encrypt-then-cache path of the counters store without
// real AES keys.
type MockEncryptor struct {
	mock.Mock
}

// Encrypt returns the arranged base64 ciphertext for the plaintext.
func (m *MockEncryptor) Encrypt(plaintext []byte) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt returns the arranged plaintext for the ciphertext.
func (m *MockEncryptor) Decrypt(ciphertext string) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// EncryptString returns the arranged ciphertext for a string plaintext.
func (m *MockEncryptor) EncryptString(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

// DecryptString returns the arranged plaintext for a string ciphertext.
func (m *MockEncryptor) DecryptString(ciphertext string) (string, error) {
	args := m.Called(ciphertext)
	return args.String(0), args.Error(1)
}
