package auth

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// CipherMode selects how token bytes are encrypted.
type CipherMode string

const (
	// CipherModeGCM seals tokens with AES-GCM and a random nonce.
	CipherModeGCM CipherMode = "gcm"
	// CipherModeECB encrypts with AES/ECB/PKCS#7, deterministic and unauthenticated.
	CipherModeECB CipherMode = "ecb"
)

// Codec encrypts and decrypts token bytes under a fixed key.
// Implementations are safe for concurrent use.
type Codec interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// NewCodec builds a codec for mode. key must be 16, 24 or 32 bytes.
func NewCodec(mode CipherMode, key []byte) (Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	switch mode {
	case CipherModeGCM, "":
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("init gcm: %w", err)
		}
		return &gcmCodec{aead: aead}, nil
	case CipherModeECB:
		return &ecbCodec{block: block}, nil
	default:
		return nil, fmt.Errorf("unknown cipher mode %q", mode)
	}
}

type gcmCodec struct {
	aead cipher.AEAD
}

func (c *gcmCodec) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *gcmCodec) Decrypt(ciphertext []byte) ([]byte, error) {
	size := c.aead.NonceSize()
	if len(ciphertext) < size+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}
	plaintext, err := c.aead.Open(nil, ciphertext[:size], ciphertext[size:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

type ecbCodec struct {
	block cipher.Block
}

func (c *ecbCodec) Encrypt(plaintext []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	padded := pkcs7Pad(plaintext, bs)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		c.block.Encrypt(out[i:i+bs], padded[i:i+bs])
	}
	return out, nil
}

func (c *ecbCodec) Decrypt(ciphertext []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrDecryption)
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += bs {
		c.block.Decrypt(out[i:i+bs], ciphertext[i:i+bs])
	}
	return pkcs7Unpad(out, bs)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
		}
	}
	return data[:len(data)-n], nil
}

var transportEncoding = base64.StdEncoding.Strict()

// EncodeForTransport renders ciphertext as header-safe text.
func EncodeForTransport(b []byte) string {
	return transportEncoding.EncodeToString(b)
}

// DecodeFromTransport reverses EncodeForTransport.
func DecodeFromTransport(s string) ([]byte, error) {
	b, err := transportEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return b, nil
}
