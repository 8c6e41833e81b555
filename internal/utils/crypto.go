package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// CardCipher шифрует и расшифровывает номера банковских карт (AES-256-GCM).
// Ключ передается при создании, глобального состояния нет. Nil-значение
// допустимо и означает "хранить как есть" — удобно для тестов и окружений
// без ключа.
// CardCipher encrypts and decrypts bank card numbers (AES-256-GCM).
// The key is injected at construction, there is no global state. A nil value
// is valid and means "store as-is", which is convenient for tests and
// environments without a key.
type CardCipher struct {
	key []byte
}

// NewCardCipher создает шифратор из hex-строки ключа (32 байта, 64 символа).
func NewCardCipher(keyHex string) (*CardCipher, error) {
	if keyHex == "" {
		return nil, fmt.Errorf("ключ шифрования не задан")
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("некорректный формат ключа шифрования (не HEX): %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("длина ключа шифрования должна быть 32 байта, получено %d", len(key))
	}
	return &CardCipher{key: key}, nil
}

// Encrypt шифрует номер карты и возвращает hex-представление шифртекста.
// Nonce дописывается в начало шифртекста.
func (c *CardCipher) Encrypt(plain string) (string, error) {
	if c == nil {
		return plain, nil
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("создание шифра: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("создание GCM: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("генерация nonce: %w", err)
	}
	return hex.EncodeToString(gcm.Seal(nonce, nonce, []byte(plain), nil)), nil
}

// Decrypt расшифровывает hex-представление шифртекста обратно в номер карты.
func (c *CardCipher) Decrypt(cipherHex string) (string, error) {
	if c == nil {
		return cipherHex, nil
	}
	raw, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("декодирование шифртекста из hex: %w", err)
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("создание шифра: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("создание GCM: %w", err)
	}
	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("шифртекст короче размера nonce")
	}
	nonce, body := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("расшифровка номера карты: %w", err)
	}
	return string(plain), nil
}
