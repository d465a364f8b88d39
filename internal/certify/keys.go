package certify

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/youmark/pkcs8"
)

// PEM block types accepted by ParsePrivateKeyPEM.
const (
	pemTypePKCS1          = "RSA PRIVATE KEY"
	pemTypePKCS8          = "PRIVATE KEY"
	pemTypeEncryptedPKCS8 = "ENCRYPTED PRIVATE KEY"
)

var (
	ErrNoPEMBlock     = errors.New("no PEM block found")
	ErrNotRSAKey      = errors.New("private key is not an RSA key")
	ErrKeyPassword    = errors.New("encrypted private key needs a password")
	ErrUnsupportedPEM = errors.New("unsupported PEM block type")
)

// LoadPrivateKey reads and parses a PEM encoded RSA private key from path.
func LoadPrivateKey(fsys afero.Fs, path, password string) (*rsa.PrivateKey, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}
	return ParsePrivateKeyPEM(data, password)
}

// ParsePrivateKeyPEM accepts PKCS#1, PKCS#8 and password protected PKCS#8 keys.
func ParsePrivateKeyPEM(data []byte, password string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEMBlock
	}

	switch block.Type {
	case pemTypePKCS1:
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case pemTypePKCS8:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrNotRSAKey
		}
		return rsaKey, nil
	case pemTypeEncryptedPKCS8:
		if password == "" {
			return nil, ErrKeyPassword
		}
		return pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes, []byte(password))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPEM, block.Type)
	}
}
