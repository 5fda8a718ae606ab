package principals

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"

	"github.com/pkg/errors"

	ppk "github.com/nivschuman/ElectionResults/internal/crypto/ppk"
	"github.com/nivschuman/ElectionResults/internal/identity"
	models "github.com/nivschuman/ElectionResults/internal/models"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
)

// Entry is one principal of a roster file. KeyPair is only set when the file carries the private key.
type Entry struct {
	Name         string
	PublicKey    ppk.PublicKey
	KeyPair      *ppk.KeyPair
	NationalId   string
	Role         models.Role
	StationId    string
	Party        string
	Organization string
}

type entryJSON struct {
	Name          string `json:"name"`
	PublicKeyHex  string `json:"public_key"`
	PrivateKeyHex string `json:"private_key,omitempty"`
	NationalId    string `json:"national_id"`
	Role          string `json:"role"`
	StationId     string `json:"station"`
	Party         string `json:"party,omitempty"`
	Organization  string `json:"organization,omitempty"`
}

func (entry *Entry) PrincipalId() string {
	return identity.PrincipalIdFromPublicKey(entry.PublicKey.AsBytes())
}

func (entry *Entry) Registration() *registry.Registration {
	return &registry.Registration{
		PrincipalId:  entry.PrincipalId(),
		NationalId:   entry.NationalId,
		Role:         entry.Role,
		StationId:    entry.StationId,
		Party:        entry.Party,
		Organization: entry.Organization,
	}
}

func RosterFromJSON(data []byte) ([]*Entry, error) {
	var entriesJSON []entryJSON
	if err := json.Unmarshal(data, &entriesJSON); err != nil {
		return nil, errors.Wrap(err, "failed to decode roster")
	}

	entries := make([]*Entry, 0, len(entriesJSON))

	for i, ej := range entriesJSON {
		role, err := models.ParseRole(ej.Role)
		if err != nil {
			return nil, errors.Wrapf(err, "roster entry %d", i)
		}

		pubBytes, err := hex.DecodeString(ej.PublicKeyHex)
		if err != nil {
			return nil, errors.Wrapf(err, "roster entry %d public key", i)
		}

		pubKey, err := ppk.GetPublicKeyFromBytes(pubBytes)
		if err != nil {
			return nil, errors.Wrapf(err, "roster entry %d public key", i)
		}

		entry := &Entry{
			Name:         ej.Name,
			PublicKey:    pubKey,
			NationalId:   ej.NationalId,
			Role:         role,
			StationId:    ej.StationId,
			Party:        ej.Party,
			Organization: ej.Organization,
		}

		if ej.PrivateKeyHex != "" {
			keyPair, err := KeyPairFromHex(ej.PrivateKeyHex)
			if err != nil {
				return nil, errors.Wrapf(err, "roster entry %d private key", i)
			}

			if !bytes.Equal(keyPair.PublicKey.AsBytes(), pubBytes) {
				return nil, errors.Errorf("roster entry %d private key does not match public key", i)
			}
			entry.KeyPair = keyPair
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func RosterFromJSONFile(path string) ([]*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roster %s", path)
	}

	return RosterFromJSON(data)
}

// KeyPairFromHex decodes a hex DER private key as written by keygen.
func KeyPairFromHex(privateKeyHex string) (*ppk.KeyPair, error) {
	privBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "private key is not hex")
	}

	keyPair, err := ppk.GetKeyPairFromPrivateKeyBytes(privBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	return keyPair, nil
}

// Bootstrap registers every roster entry as caller, stopping at the first failure.
func Bootstrap(reg *registry.Registry, caller string, entries []*Entry) ([]*models.Principal, error) {
	registered := make([]*models.Principal, 0, len(entries))

	for _, entry := range entries {
		principal, err := reg.Register(caller, entry.Registration())
		if err != nil {
			return registered, errors.Wrapf(err, "failed to register %s", entry.Name)
		}
		registered = append(registered, principal)
	}

	log.Printf("|Principals| Bootstrapped %d principals", len(registered))
	return registered, nil
}
