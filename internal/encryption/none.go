package encryption

import (
	"io"

	"study-go/internal/study"
)

// PlainEncryptor stores snapshots unencrypted. Selected with type "none".
type PlainEncryptor struct{}

var _ study.Encryptor = PlainEncryptor{}

func (PlainEncryptor) Setup(string) error { return nil }

func (PlainEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	_, err := io.Copy(w, r)
	return err
}

func (PlainEncryptor) Unlock(string) (study.DecryptionContext, error) {
	return plainDecryptor{}, nil
}

func (PlainEncryptor) IsConfigured() bool { return true }

type plainDecryptor struct{}

func (plainDecryptor) Decrypt(r io.Reader, w io.Writer) error {
	_, err := io.Copy(w, r)
	return err
}
