// Package identity turns signed action envelopes into authenticated principal ids.
// The approval core only ever sees the resulting id.
package identity

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/nivschuman/ElectionResults/internal/crypto/hash"
	"github.com/nivschuman/ElectionResults/internal/crypto/ppk"
)

type Action string

const (
	ActionSubmit       Action = "submit"
	ActionSignAgent    Action = "sign-agent"
	ActionSignObserver Action = "sign-observer"
	ActionRegister     Action = "register"
	ActionDeactivate   Action = "deactivate"
)

var ErrInvalidSignature = errors.New("invalid action signature")

type SignedAction struct {
	Action    Action //what the caller asks for
	Subject   string //station id for result actions, principal id for registry actions
	Payload   []byte //request body the signature commits to
	Timestamp int64  //unix nano timestamp chosen by the signer
	PublicKey []byte //compressed public key of signer, 33 bytes
	Signature []byte //signature of Digest, in ASN1 format
}

func PrincipalIdFromPublicKey(publicKey []byte) string {
	return hex.EncodeToString(hash.HashBytes(publicKey))
}

func (signedAction *SignedAction) AsBytes() []byte {
	buf := new(bytes.Buffer)

	writeLengthPrefixed(buf, []byte(signedAction.Action))
	writeLengthPrefixed(buf, []byte(signedAction.Subject))
	writeLengthPrefixed(buf, signedAction.Payload)
	binary.Write(buf, binary.BigEndian, signedAction.Timestamp)
	buf.Write(signedAction.PublicKey)

	return buf.Bytes()
}

func (signedAction *SignedAction) Digest() []byte {
	return hash.HashBytes(signedAction.AsBytes())
}

func Sign(keyPair *ppk.KeyPair, action Action, subject string, payload []byte, timestamp int64) (*SignedAction, error) {
	signedAction := &SignedAction{
		Action:    action,
		Subject:   subject,
		Payload:   payload,
		Timestamp: timestamp,
		PublicKey: keyPair.PublicKey.AsBytes(),
	}

	signature, err := keyPair.PrivateKey.CreateSignature(signedAction.Digest())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign action")
	}

	signedAction.Signature = signature
	return signedAction, nil
}

// Authenticate verifies the envelope and returns the id of the principal that signed it.
func Authenticate(signedAction *SignedAction) (string, error) {
	publicKey, err := ppk.GetPublicKeyFromBytes(signedAction.PublicKey)
	if err != nil {
		return "", errors.Wrap(ErrInvalidSignature, err.Error())
	}

	if !publicKey.VerifySignature(signedAction.Signature, signedAction.Digest()) {
		return "", ErrInvalidSignature
	}

	return PrincipalIdFromPublicKey(signedAction.PublicKey), nil
}

func writeLengthPrefixed(buf *bytes.Buffer, b []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(b)))
	buf.Write(b)
}
