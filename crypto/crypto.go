// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"numdash-server/commons"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidKey = errors.New("encryption key must be at least 32 bytes")

func NewCrypto() *Crypto {
	return &Crypto{
		ArgonTime:     uint32(commons.GetEnvInt("ARGON2_TIME", 1)),
		ArgonMemory:   uint32(commons.GetEnvInt("ARGON2_MEMORY", 65536)),
		ArgonThreads:  uint8(commons.GetEnvInt("ARGON2_THREADS", 2)),
		ArgonKeyLen:   uint32(commons.GetEnvInt("ARGON2_KEYLEN", 32)),
		ArgonSaltLen:  uint32(commons.GetEnvInt("ARGON2_SALTLEN", 16)),
		EncryptionKey: commons.GetEnv("ENCRYPTION_KEY"),
		HashingPepper: commons.GetEnv("HASHING_PEPPER"),
	}
}

func (c *Crypto) HashPassword(password string) (string, error) {
	commons.Logger.Debug("Hashing password")
	params := &argon2id.Params{
		Memory:      c.ArgonMemory,
		Iterations:  c.ArgonTime,
		Parallelism: c.ArgonThreads,
		SaltLength:  c.ArgonSaltLen,
		KeyLength:   c.ArgonKeyLen,
	}
	hash, err := argon2id.CreateHash(password, params)
	if err != nil {
		return "", err
	}
	commons.Logger.Debug("Password hashed")
	return hash, nil
}

func (c *Crypto) VerifyPassword(password, encodedHash string) error {
	commons.Logger.Debug("Verifying password")
	match, err := argon2id.ComparePasswordAndHash(password, encodedHash)
	if err != nil {
		return err
	}
	if !match {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// deriveKey expands the configured key into a purpose-bound 32 byte key.
func (c *Crypto) deriveKey(purpose string) ([]byte, error) {
	if len(c.EncryptionKey) < 32 {
		return nil, ErrInvalidKey
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(c.EncryptionKey), []byte(c.HashingPepper), []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (c *Crypto) EncryptData(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "AES-GCM":
		key, err := c.deriveKey("numdash/aes-gcm")
		if err != nil {
			return nil, err
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		nonce := make([]byte, gcm.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return nil, err
		}
		return gcm.Seal(nonce, nonce, data, nil), nil
	default:
		return nil, fmt.Errorf("unsupported encryption algorithm: %s", algorithm)
	}
}

func (c *Crypto) DecryptData(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "AES-GCM":
		key, err := c.deriveKey("numdash/aes-gcm")
		if err != nil {
			return nil, err
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		if len(data) < gcm.NonceSize() {
			return nil, errors.New("ciphertext too short")
		}
		nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
		return gcm.Open(nil, nonce, sealed, nil)
	default:
		return nil, fmt.Errorf("unsupported encryption algorithm: %s", algorithm)
	}
}

func (c *Crypto) HashData(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "HMAC-SHA-256":
		key, err := c.deriveKey("numdash/hmac")
		if err != nil {
			return nil, err
		}
		mac := hmac.New(sha256.New, key)
		mac.Write(data)
		return mac.Sum(nil), nil
	default:
		return nil, fmt.Errorf("unsupported hashing algorithm: %s", algorithm)
	}
}

func (c *Crypto) VerifyHash(data, expected []byte, algorithm string) (bool, error) {
	sum, err := c.HashData(data, algorithm)
	if err != nil {
		return false, err
	}
	return hmac.Equal(sum, expected), nil
}

// SealString encrypts s and returns it base64 encoded, for text columns.
func (c *Crypto) SealString(s string) (string, error) {
	enc, err := c.EncryptData([]byte(s), "AES-GCM")
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(enc), nil
}

// OpenString reverses SealString.
func (c *Crypto) OpenString(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	dec, err := c.DecryptData(raw, "AES-GCM")
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

func GenerateRandomString(prefix string, length int, encoding string) (string, error) {
	supported_encodings := []string{"hex", "base64"}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	switch encoding {
	case "hex":
		return prefix + hex.EncodeToString(b), nil
	case "base64":
		return prefix + base64.RawURLEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s, Supported encodings are: %s", encoding, supported_encodings)
	}
}
