package registry_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	alg, err := registry.Resolve("sha256")
	require.Nil(t, err)
	assert.Equal(t, "SHA256", alg.Name)
	assert.Equal(t, 32, alg.Size)

	// Matching is case-insensitive and accepts display names.
	for _, identifier := range []string{"SHA256", "Sha256", "  sha256 "} {
		a, err := registry.Resolve(identifier)
		require.Nil(t, err)
		assert.Same(t, alg, a)
	}

	alg, err = registry.Resolve("gost-cryptopro")
	require.Nil(t, err)
	assert.Equal(t, "GOST-CryptoPro", alg.Name)

	_, err = registry.Resolve("sha-1billion")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownAlgorithm))
}

func TestListIsAlphabetical(t *testing.T) {
	list := registry.List()
	require.NotEmpty(t, list)
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = strings.ToLower(a.Name)
	}
	assert.True(t, sort.StringsAreSorted(names))

	// The list is a copy; callers can't corrupt the table.
	list[0] = nil
	assert.NotNil(t, registry.List()[0])
}

func TestDigestLengths(t *testing.T) {
	expected := map[string]int{
		"blake2b":    64,
		"blake2s":    32,
		"blake3":     32,
		"md5":        16,
		"ripemd-320": 40,
		"sha1":       20,
		"sha3-384":   48,
		"shabal-192": 24,
		"tiger":      24,
		"whirlpool":  64,
	}
	for id, size := range expected {
		alg, err := registry.Resolve(id)
		require.Nil(t, err, id)
		assert.Equal(t, size, alg.Size, id)
	}
}

func TestClassificationIsMetadataOnly(t *testing.T) {
	md5Alg, err := registry.Resolve("md5")
	require.Nil(t, err)
	assert.Equal(t, constants.ClassObsolete, md5Alg.Classification)
	assert.True(t, md5Alg.Insecure())
	assert.True(t, md5Alg.Supported())

	gost, err := registry.Resolve("gost")
	require.Nil(t, err)
	assert.Equal(t, constants.ClassDeprecated, gost.Classification)

	sha256Alg, err := registry.Resolve("sha256")
	require.Nil(t, err)
	assert.False(t, sha256Alg.Insecure())
}

func TestUnimplementedAlgorithmsStillResolve(t *testing.T) {
	for _, id := range []string{"fsb-256", "groestl-512", "shabal-256", "md2", "keccak-384", "ripemd-256"} {
		alg, err := registry.Resolve(id)
		require.Nil(t, err, id)
		assert.False(t, alg.Supported(), id)

		_, _, err = alg.Compute(strings.NewReader("data"))
		require.NotNil(t, err, id)
		assert.True(t, errors.Is(err, registry.ErrNoImplementation), id)
	}
}

func TestInferFromLength(t *testing.T) {
	// 40 bytes belongs to RIPEMD-320 alone.
	alg, err := registry.InferFromLength(40)
	require.Nil(t, err)
	assert.Equal(t, "RIPEMD-320", alg.Name)

	// 16 bytes is shared by MD2, MD4 and MD5.
	_, err = registry.InferFromLength(16)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownAlgorithm))

	// Nothing has a 17-byte digest.
	_, err = registry.InferFromLength(17)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, registry.ErrUnknownAlgorithm))
}

// Known-answer vectors for "Hello, world!". Every implemented
// algorithm is checked against an independently published digest.
func TestComputeKnownAnswers(t *testing.T) {
	vectors := map[string]string{
		"blake2b":      "a2764d133a16816b5847a737a786f2ece4c148095c5faa73e24b4cc5d666c3e45ec271504e14dc6127ddfce4e144fb23b91a6f7b04b53d695502290722953b0f",
		"blake2s":      "30d8777f0e178582ec8cd2fcdc18af57c828ee2f89e978df52c8e7af078bd5cf",
		"blake3":       "ede5c0b10f2ec4979c69b52f61e42ff5b413519ce09be0f14d098dcfe5f6f98d",
		"keccak-256":   "b6e16d27ac5ab427a7f68900ac5559ce272dc6c37c82b3e052246c82244c50e4",
		"keccak-512":   "101f353a4727cc94ef81613bb38a807ebc888e2061baa4f845c84cd3c317f3430fda3dbeb44010844b35bccc8e190061d05b4d002c709615275a44e18e494f0c",
		"md4":          "0abe9ee1f376caa1bcecad9042f16e73",
		"md5":          "6cd3556deb0da54bca060b4c39479839",
		"ripemd-160":   "58262d1fbdbe4530d8865d3518c6d6e41002610f",
		"sha1":         "943a702d06f34599aee1f8da8ef9f7296031d699",
		"sha224":       "8552d8b7a7dc5476cb9e25dee69a8091290764b7f2a64fe6e78e9568",
		"sha256":       "315f5bdb76d078c43b8ac0064e4a0164612b1fce77c869345bfc94c75894edd3",
		"sha384":       "55bc556b0d2fe0fce582ba5fe07baafff035653638c7ac0d5494c2a64c0bea1cc57331c7c12a45cdbca7f4c34a089eeb",
		"sha512":       "c1527cd893c124773d811911970c8fe6e857d6df5dc9226bd8a160614c0cd963a4ddea2b94bb7d36021ef9d865d5cea294a82dd49a0bb269f51f6e7a57f79421",
		"sha3-224":     "6a33e22f20f16642697e8bd549ff7b759252ad56c05a1b0acc31dc69",
		"sha3-256":     "f345a219da005ebe9c1a1eaad97bbf38a10c8473e41d0af7fb617caa0c6aa722",
		"sha3-384":     "6ba9ea268965916f5937228dde678c202f9fe756a87d8b1b7362869583a45901fd1a27289d72fc0e3ff48b1b78827d3a",
		"sha3-512":     "8e47f1185ffd014d238fabd02a1a32defe698cbf38c037a90e3c0a0a32370fb52cbd641250508502295fcabcbf676c09470b27443868c8e5f70e26dc337288af",
		"sm3":          "e3bca101b496880c3653dad85861d0e784b00a8c18f7574472d156060e9096bf",
		"streebog-256": "ccb6fae3553c101715da535328de718f6f6e412db8611a38025c510ac8f85aeb",
		"streebog-512": "a83352d35dc8f07ca8048e6752415e5e991527e29415ade0eaad6e48d67bf37b60dfd7bb4475cbcbe297ed016128391c312dfe3a00e0a9bd0e497389c888eedc",
		"tiger":        "b5e5dd73a5894236937084131bb845189cdc5477579b9f36",
		"whirlpool":    "a1a8703be5312b139b42eb331aa800ccaca0c34d58c6988e44f45489cfb16beb4b6bf0ce20be1db22a10b0e4bb680480a3d2429e6c483085453c098b65852495",
	}
	for id, want := range vectors {
		alg, err := registry.Resolve(id)
		require.Nil(t, err, id)
		digest, n, err := alg.Compute(bytes.NewReader([]byte("Hello, world!")))
		require.Nil(t, err, id)
		assert.Equal(t, int64(13), n, id)
		assert.Equal(t, alg.Size, len(digest), id)
		assert.Equal(t, want, hex.EncodeToString(digest), id)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	alg, err := registry.Resolve("md5")
	require.Nil(t, err)
	digest, n, err := alg.Compute(bytes.NewReader(nil))
	require.Nil(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", hex.EncodeToString(digest))
}
