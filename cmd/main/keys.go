package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ppk "github.com/nivschuman/ElectionResults/internal/crypto/ppk"
	"github.com/nivschuman/ElectionResults/internal/identity"
	principals "github.com/nivschuman/ElectionResults/internal/principals"
)

var keyHex string

func init() {
	rootCmd.AddCommand(keygenCmd)
}

var keygenCmd = &cobra.Command{
	Use:         "keygen",
	Short:       "Generate a principal key pair",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipNodeAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := ppk.GenerateKeyPair()
		if err != nil {
			return err
		}

		privBytes, err := keyPair.PrivateKey.AsBytes()
		if err != nil {
			return err
		}

		pubBytes := keyPair.PublicKey.AsBytes()
		fmt.Fprintf(cmd.OutOrStdout(), "private key:  %x\n", privBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "public key:   %x\n", pubBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "principal id: %s\n", identity.PrincipalIdFromPublicKey(pubBytes))
		return nil
	},
}

func addKeyFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keyHex, "key", "", "hex encoded private key of the caller")
	cmd.MarkFlagRequired("key")
}

// authenticate signs the action with --key and returns the principal id the identity layer derives from it.
func authenticate(action identity.Action, subject string, payload []byte) (string, error) {
	keyPair, err := principals.KeyPairFromHex(keyHex)
	if err != nil {
		return "", err
	}

	signedAction, err := identity.Sign(keyPair, action, subject, payload, time.Now().UnixNano())
	if err != nil {
		return "", err
	}

	callerId, err := identity.Authenticate(signedAction)
	if err != nil {
		return "", errors.Wrapf(err, "failed to authenticate %s", action)
	}

	return callerId, nil
}

func shortId(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}

func hexOrDash(b []byte) string {
	if len(b) == 0 {
		return "-"
	}
	return hex.EncodeToString(b)
}
