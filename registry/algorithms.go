package registry

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/cxmcc/tiger"
	"github.com/emmansun/gmsm/sm3"
	"github.com/jzelinskie/whirlpool"
	"github.com/zeebo/blake3"
	"go.cypherpunks.ru/gogost/v5/gost28147"
	"go.cypherpunks.ru/gogost/v5/gost34112012256"
	"go.cypherpunks.ru/gogost/v5/gost34112012512"
	"go.cypherpunks.ru/gogost/v5/gost341194"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/fixitylab/checksum-services/constants"
)

func newBlake2b() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

func newBlake2s() hash.Hash {
	h, _ := blake2s.New256(nil)
	return h
}

// algorithms is the capability table, ordered alphabetically by
// canonical name. Entries with a nil constructor have no Go
// implementation; they still resolve so that manifests naming them
// parse and length-validate, but Compute fails with
// ErrNoImplementation.
var algorithms = []*Algorithm{
	{Name: "BLAKE2b", ID: "blake2b", Size: 64, newHash: newBlake2b},
	{Name: "BLAKE2s", ID: "blake2s", Size: 32, newHash: newBlake2s},
	{Name: "BLAKE3", ID: "blake3", Size: 32, newHash: func() hash.Hash { return blake3.New() }},
	{Name: "FSB-160", ID: "fsb-160", Size: 20},
	{Name: "FSB-224", ID: "fsb-224", Size: 28},
	{Name: "FSB-256", ID: "fsb-256", Size: 32},
	{Name: "FSB-384", ID: "fsb-384", Size: 48},
	{Name: "FSB-512", ID: "fsb-512", Size: 64},
	{Name: "GOST", ID: "gost", Size: 32, Classification: constants.ClassDeprecated,
		newHash: func() hash.Hash { return gost341194.New(&gost28147.SboxIdGostR341194TestParamSet) }},
	{Name: "GOST-CryptoPro", ID: "gost-cryptopro", Size: 32, Classification: constants.ClassDeprecated,
		newHash: func() hash.Hash { return gost341194.New(&gost28147.SboxIdGostR341194CryptoProParamSet) }},
	{Name: "Groestl-224", ID: "groestl-224", Size: 28},
	{Name: "Groestl-256", ID: "groestl-256", Size: 32},
	{Name: "Groestl-384", ID: "groestl-384", Size: 48},
	{Name: "Groestl-512", ID: "groestl-512", Size: 64},
	{Name: "Keccak-224", ID: "keccak-224", Size: 28},
	{Name: "Keccak-256", ID: "keccak-256", Size: 32, newHash: sha3.NewLegacyKeccak256},
	{Name: "Keccak-384", ID: "keccak-384", Size: 48},
	{Name: "Keccak-512", ID: "keccak-512", Size: 64, newHash: sha3.NewLegacyKeccak512},
	{Name: "MD2", ID: "md2", Size: 16, Classification: constants.ClassObsolete},
	{Name: "MD4", ID: "md4", Size: 16, Classification: constants.ClassObsolete, newHash: md4.New},
	{Name: "MD5", ID: "md5", Size: 16, Classification: constants.ClassObsolete, newHash: md5.New},
	{Name: "RIPEMD-160", ID: "ripemd-160", Size: 20, newHash: ripemd160.New},
	{Name: "RIPEMD-256", ID: "ripemd-256", Size: 32},
	{Name: "RIPEMD-320", ID: "ripemd-320", Size: 40},
	{Name: "SHA1", ID: "sha1", Size: 20, Classification: constants.ClassObsolete, newHash: sha1.New},
	{Name: "SHA224", ID: "sha224", Size: 28, newHash: sha256.New224},
	{Name: "SHA256", ID: "sha256", Size: 32, newHash: sha256.New},
	{Name: "SHA3-224", ID: "sha3-224", Size: 28, newHash: sha3.New224},
	{Name: "SHA3-256", ID: "sha3-256", Size: 32, newHash: sha3.New256},
	{Name: "SHA3-384", ID: "sha3-384", Size: 48, newHash: sha3.New384},
	{Name: "SHA3-512", ID: "sha3-512", Size: 64, newHash: sha3.New512},
	{Name: "SHA384", ID: "sha384", Size: 48, newHash: sha512.New384},
	{Name: "SHA512", ID: "sha512", Size: 64, newHash: sha512.New},
	{Name: "Shabal-192", ID: "shabal-192", Size: 24},
	{Name: "Shabal-224", ID: "shabal-224", Size: 28},
	{Name: "Shabal-256", ID: "shabal-256", Size: 32},
	{Name: "Shabal-384", ID: "shabal-384", Size: 48},
	{Name: "Shabal-512", ID: "shabal-512", Size: 64},
	{Name: "SM3", ID: "sm3", Size: 32, newHash: sm3.New},
	{Name: "Streebog-256", ID: "streebog-256", Size: 32, newHash: func() hash.Hash { return gost34112012256.New() }},
	{Name: "Streebog-512", ID: "streebog-512", Size: 64, newHash: func() hash.Hash { return gost34112012512.New() }},
	{Name: "Tiger", ID: "tiger", Size: 24, newHash: tiger.New},
	{Name: "Whirlpool", ID: "whirlpool", Size: 64, newHash: whirlpool.New},
}
