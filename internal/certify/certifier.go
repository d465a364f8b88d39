package certify

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"quiz-exam/internal/config"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Document property names carrying the certificate.
const (
	PropertySignature       = "Signature"
	PropertySignatureMethod = "SignatureMethod"
)

var disableConfigDir sync.Once

// Outcome is the result of Certify. When signing was attempted and failed,
// Bytes is the untouched artifact and Fallback holds the reason.
type Outcome struct {
	Bytes     []byte
	Signed    bool
	Algorithm string
	Signature string
	Fallback  error
}

// Certifier signs rendered documents with an RSA key. It never fails: any
// signing problem degrades to returning the unsigned artifact.
type Certifier struct {
	fs       afero.Fs
	keyPath  string
	password string
}

// NewCertifier creates a certifier for the configured key. An empty key path
// disables signing.
func NewCertifier(fsys afero.Fs, cfg config.SigningConfig) *Certifier {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Certifier{fs: fsys, keyPath: cfg.KeyPath, password: cfg.KeyPassword}
}

// Enabled reports whether a key is configured.
func (c *Certifier) Enabled() bool {
	return c.keyPath != ""
}

// Certify signs the SHA-256 digest of artifact with RSA-PSS and embeds the
// hex signature as document properties.
func (c *Certifier) Certify(artifact []byte) Outcome {
	if !c.Enabled() {
		return Outcome{Bytes: artifact}
	}

	signed, signature, err := c.sign(artifact)
	if err != nil {
		logger.Get().Warn("Signing failed, delivering unsigned document",
			zap.String("keyPath", c.keyPath), zap.Error(err))
		return Outcome{Bytes: artifact, Fallback: err}
	}
	return Outcome{
		Bytes:     signed,
		Signed:    true,
		Algorithm: domain.SignatureMethodRSAPSS,
		Signature: signature,
	}
}

func (c *Certifier) sign(artifact []byte) ([]byte, string, error) {
	key, err := LoadPrivateKey(c.fs, c.keyPath, c.password)
	if err != nil {
		return nil, "", domain.NewSigningError("failed to load signing key", err)
	}

	digest := sha256.Sum256(artifact)
	sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
	})
	if err != nil {
		return nil, "", domain.NewSigningError("failed to sign document", err)
	}
	signature := hex.EncodeToString(sig)

	var out bytes.Buffer
	props := map[string]string{
		PropertySignature:       signature,
		PropertySignatureMethod: domain.SignatureMethodRSAPSS,
	}
	if err := api.AddProperties(bytes.NewReader(artifact), &out, props, newPDFConfig()); err != nil {
		return nil, "", domain.NewSigningError("failed to embed signature", err)
	}
	return out.Bytes(), signature, nil
}

// ReadCertificate extracts the embedded certificate of a signed document.
func ReadCertificate(document []byte) (*domain.Certificate, error) {
	disableConfigDir.Do(api.DisableConfigDir)
	props, err := api.Properties(bytes.NewReader(document), newPDFConfig())
	if err != nil {
		return nil, fmt.Errorf("read document properties: %w", err)
	}
	sig, ok := props[PropertySignature]
	if !ok {
		return nil, domain.NewNotFoundError("document carries no signature")
	}
	return &domain.Certificate{Signature: sig, Algorithm: props[PropertySignatureMethod]}, nil
}

// Verify checks signatureHex against the unsigned artifact bytes.
func Verify(artifact []byte, signatureHex string, pub *rsa.PublicKey) error {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	digest := sha256.Sum256(artifact)
	return rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
	})
}

func newPDFConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
