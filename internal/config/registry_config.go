package config

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/nivschuman/ElectionResults/internal/crypto/ppk"
	"github.com/nivschuman/ElectionResults/internal/identity"
)

type RegistryConfig struct {
	OwnerPublicKey []byte `yaml:"owner-public-key"`
}

func (r *RegistryConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		OwnerPublicKey string `yaml:"owner-public-key"`
	}

	if err := unmarshal(&raw); err != nil {
		return err
	}

	publicKeyBytes, err := hex.DecodeString(raw.OwnerPublicKey)
	if err != nil {
		return errors.Wrap(err, "owner-public-key is not hex")
	}

	if _, err := ppk.GetPublicKeyFromBytes(publicKeyBytes); err != nil {
		return errors.Wrap(err, "owner-public-key is not a compressed P-256 key")
	}

	r.OwnerPublicKey = publicKeyBytes
	return nil
}

// OwnerId is the principal id of the registry owner, empty when no owner key is configured.
func (r *RegistryConfig) OwnerId() string {
	if len(r.OwnerPublicKey) == 0 {
		return ""
	}
	return identity.PrincipalIdFromPublicKey(r.OwnerPublicKey)
}
