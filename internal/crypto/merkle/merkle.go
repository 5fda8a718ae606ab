package merkle

import (
	"bytes"

	"github.com/nivschuman/ElectionResults/internal/crypto/hash"
)

type ProofItem struct {
	Hash   []byte
	IsLeft bool
}

type MerkleProof struct {
	Index int
	Items []ProofItem
}

// CalculateMerkleRoot returns nil for an empty leaf set. Odd levels duplicate their last hash.
func CalculateMerkleRoot(hashables []hash.Hashable) []byte {
	hashes := getHashes(hashables)
	if len(hashes) == 0 {
		return nil
	}

	for len(hashes) > 1 {
		hashes = nextLevel(hashes)
	}

	return hashes[0]
}

func GenerateMerkleProof(items []hash.Hashable, index int) (*MerkleProof, bool) {
	hashes := getHashes(items)
	if index < 0 || index >= len(hashes) {
		return nil, false
	}

	proof := &MerkleProof{Index: index}
	for len(hashes) > 1 {
		if len(hashes)%2 != 0 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}

		if index%2 == 0 {
			proof.Items = append(proof.Items, ProofItem{Hash: hashes[index+1], IsLeft: false})
		} else {
			proof.Items = append(proof.Items, ProofItem{Hash: hashes[index-1], IsLeft: true})
		}

		hashes = nextLevel(hashes)
		index /= 2
	}

	return proof, true
}

func VerifyMerkleProof(leaf hash.Hashable, proof *MerkleProof, root []byte) bool {
	if proof == nil {
		return false
	}

	current := leaf.GetHash()
	for _, item := range proof.Items {
		if item.IsLeft {
			current = hash.HashConcat(item.Hash, current)
		} else {
			current = hash.HashConcat(current, item.Hash)
		}
	}

	return bytes.Equal(current, root)
}

func nextLevel(hashes [][]byte) [][]byte {
	if len(hashes)%2 != 0 {
		hashes = append(hashes, hashes[len(hashes)-1])
	}

	level := make([][]byte, 0, len(hashes)/2)
	for i := 0; i < len(hashes); i += 2 {
		level = append(level, hash.HashConcat(hashes[i], hashes[i+1]))
	}
	return level
}

func getHashes(hashables []hash.Hashable) [][]byte {
	hashes := make([][]byte, 0, len(hashables))
	for _, item := range hashables {
		hashes = append(hashes, item.GetHash())
	}
	return hashes
}
