// Package core defines the types shared by the counter contract and its host.
// Contract code only needs the identities and acknowledgements declared here.
package core

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address identifies an account on the chain
type Address [20]byte

var ZeroAddress = Address{}

func (addr Address) String() string {
	return hex.EncodeToString(addr[:])
}

// AddressFromString decodes a hex address, returning ZeroAddress when it is malformed.
func AddressFromString(str string) Address {
	addr, err := ParseAddress(str)
	if err != nil {
		return ZeroAddress
	}
	return addr
}

// ParseAddress decodes a hex address with an optional 0x prefix.
func ParseAddress(str string) (Address, error) {
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	b, err := hex.DecodeString(str)
	if err != nil {
		return ZeroAddress, fmt.Errorf("invalid address %q: %w", str, err)
	}
	if len(b) > len(Address{}) {
		return ZeroAddress, fmt.Errorf("invalid address %q: too long", str)
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// MarshalText renders the address in its string form so JSON state stays readable.
func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

func (addr *Address) UnmarshalText(text []byte) error {
	a, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*addr = a
	return nil
}
