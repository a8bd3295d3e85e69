package installer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// checkDetachedSignature verifies a detached OpenPGP signature over the
// file at path against the armored keyring at keyringPath. Armored
// inputs are tried first, then binary.
func checkDetachedSignature(path string, signature []byte, keyringPath string) error {
	keyringFile, err := os.Open(keyringPath)
	if err != nil {
		return fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		if _, seekErr := keyringFile.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("read keyring: %w", err)
		}
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return fmt.Errorf("read keyring: %w", err)
		}
	}
	if len(keyring) == 0 {
		return fmt.Errorf("keyring is empty")
	}

	signed, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open signed file: %w", err)
	}
	defer signed.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, signed, bytes.NewReader(signature), nil)
	if err != nil {
		if _, seekErr := signed.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("verify signature: %w", err)
		}
		_, err = openpgp.CheckDetachedSignature(keyring, signed, bytes.NewReader(signature), nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}
	return nil
}
