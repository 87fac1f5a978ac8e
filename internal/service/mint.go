package service

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const nativeDecimals = 18

// MintFunction is the contract function the client calls.
const MintFunction = "mint"

// MintParams is everything a wallet needs to send the mint transaction.
type MintParams struct {
	ContractAddress string `json:"contractAddress"`
	ChainID         int64  `json:"chainId"`
	RPCURL          string `json:"rpcUrl,omitempty"`
	Function        string `json:"function"`
	FID             uint64 `json:"fid"`
	MetadataURI     string `json:"metadataUri"`
	Value           string `json:"value"`
	ValueWei        string `json:"valueWei"`
}

// MintService prepares calls against the minting contract. The contract itself
// is not modelled here.
type MintService struct {
	contractAddress string
	chainID         int64
	rpcURL          string
	price           string
	priceWei        *big.Int
	scheme          string
}

// MintConfig holds configuration for the mint service.
type MintConfig struct {
	ContractAddress string
	ChainID         int64
	RPCURL          string // chain endpoint handed to wallets that lack the network
	Price           string // in native currency units, e.g. "0.0002"
	ContentScheme   string
}

// NewMintService validates the configured price and creates the service.
func NewMintService(cfg *MintConfig) (*MintService, error) {
	priceWei, err := ParseUnits(cfg.Price, nativeDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid mint price %q: %w", cfg.Price, err)
	}
	scheme := cfg.ContentScheme
	if scheme == "" {
		scheme = "ipfs"
	}
	return &MintService{
		contractAddress: cfg.ContractAddress,
		chainID:         cfg.ChainID,
		rpcURL:          cfg.RPCURL,
		price:           cfg.Price,
		priceWei:        priceWei,
		scheme:          scheme,
	}, nil
}

// Params builds the mint call for fid and a pinned metadata URI.
func (s *MintService) Params(fid, metadataURI string) (*MintParams, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(fid), 10, 64)
	if err != nil || n == 0 {
		return nil, invalidArgument("fid must be a positive integer")
	}

	metadataURI = strings.TrimSpace(metadataURI)
	prefix := s.scheme + "://"
	if !strings.HasPrefix(metadataURI, prefix) || len(metadataURI) == len(prefix) {
		return nil, invalidArgument("metadataUrl must be a %s URI", prefix)
	}

	if s.contractAddress == "" {
		return nil, errors.New("mint contract address is not configured")
	}

	return &MintParams{
		ContractAddress: s.contractAddress,
		ChainID:         s.chainID,
		RPCURL:          s.rpcURL,
		Function:        MintFunction,
		FID:             n,
		MetadataURI:     metadataURI,
		Value:           s.price,
		ValueWei:        s.priceWei.String(),
	}, nil
}

// ParseUnits converts a decimal amount into its smallest unit. Amounts that do
// not land on a whole unit are rejected.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(amount))
	if !ok {
		return nil, errors.New("not a decimal number")
	}
	if r.Sign() < 0 {
		return nil, errors.New("amount is negative")
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount has more than %d decimals", decimals)
	}
	return new(big.Int).Set(r.Num()), nil
}
