// Package address validates recipient addresses against a Bitcoin network.
package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Validator checks addresses for a single network.
type Validator struct {
	params *chaincfg.Params
}

// NewValidator returns a Validator for params, defaulting to mainnet.
func NewValidator(params *chaincfg.Params) *Validator {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	return &Validator{params: params}
}

func (v *Validator) Params() *chaincfg.Params {
	return v.params
}

// Decode parses a pay-to address. Serialized public keys are rejected even
// though btcutil accepts them, since they are not something a user pays to.
func (v *Validator) Decode(addr string) (btcutil.Address, error) {
	decoded, err := btcutil.DecodeAddress(addr, v.params)
	if err != nil {
		return nil, err
	}

	if _, ok := decoded.(*btcutil.AddressPubKey); ok {
		return nil, fmt.Errorf("public key is not a pay-to address")
	}

	if !decoded.IsForNet(v.params) {
		return nil, fmt.Errorf("address is not for network %s", v.params.Name)
	}

	return decoded, nil
}

// IsValid reports whether addr is a valid address on the validator's network.
func (v *Validator) IsValid(addr string) bool {
	_, err := v.Decode(addr)
	return err == nil
}

// ParamsForNetwork maps a network name to its chain parameters.
func ParamsForNetwork(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network: %s", name)
	}
}
