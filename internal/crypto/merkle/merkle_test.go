package merkle_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hash "github.com/nivschuman/ElectionResults/internal/crypto/hash"
	merkle "github.com/nivschuman/ElectionResults/internal/crypto/merkle"
)

type stringContent struct {
	content string
}

func (stringContent *stringContent) GetHash() []byte {
	return hash.HashBytes([]byte(stringContent.content))
}

var hashables = []hash.Hashable{
	&stringContent{content: "hello"},
	&stringContent{content: "world"},
	&stringContent{content: "why"},
	&stringContent{content: "what"},
}

/*
	H(hello) = 2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824
	H(H(why) || H(what)) = dd87a4c8c1271a1e926cd6699021404b18505e6e4def12e270c67556e562c721
	root = 203dca499fcc350b3885ec3f8bdb2a0980ffb62d67f803076ee3f7c5f554a328
*/

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestCalculateMerkleRoot(t *testing.T) {
	expected := mustDecode(t, "203dca499fcc350b3885ec3f8bdb2a0980ffb62d67f803076ee3f7c5f554a328")
	assert.Equal(t, expected, merkle.CalculateMerkleRoot(hashables))
}

func TestCalculateMerkleRoot_Empty(t *testing.T) {
	assert.Nil(t, merkle.CalculateMerkleRoot(nil))
}

func TestCalculateMerkleRoot_SingleLeaf(t *testing.T) {
	leaf := &stringContent{content: "hello"}
	assert.Equal(t, leaf.GetHash(), merkle.CalculateMerkleRoot([]hash.Hashable{leaf}))
}

func TestGenerateMerkleProof(t *testing.T) {
	proof, ok := merkle.GenerateMerkleProof(hashables, 1)
	require.True(t, ok)
	require.Len(t, proof.Items, 2)

	assert.Equal(t, mustDecode(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"), proof.Items[0].Hash)
	assert.True(t, proof.Items[0].IsLeft)
	assert.Equal(t, mustDecode(t, "dd87a4c8c1271a1e926cd6699021404b18505e6e4def12e270c67556e562c721"), proof.Items[1].Hash)
	assert.False(t, proof.Items[1].IsLeft)
}

func TestGenerateMerkleProof_OutOfRange(t *testing.T) {
	_, ok := merkle.GenerateMerkleProof(hashables, 4)
	assert.False(t, ok)
}

func TestVerifyMerkleProof_EveryLeafOfOddTree(t *testing.T) {
	leaves := append([]hash.Hashable{}, hashables...)
	leaves = append(leaves, &stringContent{content: "extra"})
	root := merkle.CalculateMerkleRoot(leaves)

	for i, leaf := range leaves {
		proof, ok := merkle.GenerateMerkleProof(leaves, i)
		require.True(t, ok)
		assert.True(t, merkle.VerifyMerkleProof(leaf, proof, root), "leaf %d", i)
	}
}

func TestVerifyMerkleProof_WhenProofIsInvalid(t *testing.T) {
	leaf := &stringContent{content: "world"}

	proof := &merkle.MerkleProof{
		Items: []merkle.ProofItem{
			{Hash: mustDecode(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"), IsLeft: true},
			{Hash: mustDecode(t, "dd87a4c8c1271a1e926cd6699021404b18505e6e4def12e270c67556e562c720"), IsLeft: false},
		},
	}

	root := mustDecode(t, "203dca499fcc350b3885ec3f8bdb2a0980ffb62d67f803076ee3f7c5f554a328")
	assert.False(t, merkle.VerifyMerkleProof(leaf, proof, root))
}
