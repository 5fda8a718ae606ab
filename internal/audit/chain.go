package audit

import (
	"bytes"
	"fmt"

	"github.com/nivschuman/ElectionResults/internal/crypto/hash"
	"github.com/nivschuman/ElectionResults/internal/crypto/merkle"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

type ChainError struct {
	Sequence uint64
	Reason   string
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("audit chain broken at event %d: %s", e.Sequence, e.Reason)
}

// VerifyChain expects the complete log starting at sequence 1.
func VerifyChain(events []*models.AuditEvent) error {
	prevHash := models.GenesisHash

	for i, event := range events {
		expectedSequence := uint64(i + 1)

		if event.Sequence != expectedSequence {
			return &ChainError{Sequence: expectedSequence, Reason: fmt.Sprintf("found sequence %d", event.Sequence)}
		}

		if !bytes.Equal(event.PrevHash, prevHash) {
			return &ChainError{Sequence: event.Sequence, Reason: "previous hash does not match"}
		}

		if !bytes.Equal(event.Hash, event.GetHash()) {
			return &ChainError{Sequence: event.Sequence, Reason: "event hash does not match its content"}
		}

		prevHash = event.Hash
	}

	return nil
}

// StationEvidenceRoot is the merkle root over a station's event hashes in log order.
func StationEvidenceRoot(stationEvents []*models.AuditEvent) []byte {
	return merkle.CalculateMerkleRoot(toHashables(stationEvents))
}

// StationEvidenceProof proves that the event with the given sequence is part of the station's evidence root.
func StationEvidenceProof(stationEvents []*models.AuditEvent, sequence uint64) (*merkle.MerkleProof, bool) {
	for i, event := range stationEvents {
		if event.Sequence == sequence {
			return merkle.GenerateMerkleProof(toHashables(stationEvents), i)
		}
	}

	return nil, false
}

func VerifyStationEvidence(event *models.AuditEvent, proof *merkle.MerkleProof, root []byte) bool {
	return merkle.VerifyMerkleProof(event, proof, root)
}

func toHashables(events []*models.AuditEvent) []hash.Hashable {
	hashables := make([]hash.Hashable, len(events))
	for i, event := range events {
		hashables[i] = event
	}
	return hashables
}
