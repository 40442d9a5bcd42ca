package account

import (
	"crypto/ecdsa"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// AddrLen is the length of an account address in bytes.
const AddrLen = 20

// Address identifies an account, external or contract. External
// addresses derive from an ECDSA public key, contract addresses from
// the deployer address and its account nonce. Both follow the
// ethereum scheme: keccak256, last 20 bytes.
// https://ethereum.org/en/developers/docs/accounts/
type Address struct {
	addr [AddrLen]byte
}

func NewAddress(addr [AddrLen]byte) *Address {
	a := &Address{addr: addr}
	return a
}

func NewAddressFromPublicKey(pub *ecdsa.PublicKey) *Address {
	raw := crypto.FromECDSAPub(pub)
	hash := crypto.Keccak256(raw[1:]) // strip the 0x04 prefix
	return newAddressFromHash(hash)
}

func NewContractAddress(deployer Address, nonce uint32) *Address {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], nonce)
	hash := crypto.Keccak256(deployer.addr[:], buf[:])
	return newAddressFromHash(hash)
}

func NewAddressFromHex(s string) (*Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if len(raw) != AddrLen {
		return nil, fmt.Errorf("address must be %d bytes, got %d", AddrLen, len(raw))
	}
	a := Address{}
	copy(a.addr[:], raw)
	return &a, nil
}

func newAddressFromHash(hash []byte) *Address {
	a := Address{}
	copy(a.addr[:], hash[len(hash)-AddrLen:])
	return &a
}

func (a Address) Bytes() []byte {
	return a.addr[:]
}

func (a Address) Hex() string {
	return hex.EncodeToString(a.addr[:])
}

func (a Address) String() string {
	return a.Hex()
}

// Short returns the first bytes of the hex form, for logs.
func (a Address) Short() string {
	return a.Hex()[:8] + "..."
}
