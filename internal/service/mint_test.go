package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	testCases := []struct {
		amount  string
		want    string
		wantErr bool
	}{
		{amount: "0.0002", want: "200000000000000"},
		{amount: "1", want: "1000000000000000000"},
		{amount: "0", want: "0"},
		{amount: "0.0000000000000000001", wantErr: true},
		{amount: "-1", wantErr: true},
		{amount: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseUnits(tc.amount, 18)
		if tc.wantErr {
			assert.Error(t, err, tc.amount)
			continue
		}
		require.NoError(t, err, tc.amount)
		assert.Equal(t, tc.want, got.String())
	}
}

func TestMintParams(t *testing.T) {
	s, err := NewMintService(&MintConfig{
		ContractAddress: "0xabc",
		ChainID:         8453,
		RPCURL:          "https://mainnet.base.org",
		Price:           "0.0002",
	})
	require.NoError(t, err)

	p, err := s.Params("42", "ipfs://bafyMeta/metadata-42.json")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", p.ContractAddress)
	assert.Equal(t, "https://mainnet.base.org", p.RPCURL)
	assert.EqualValues(t, 8453, p.ChainID)
	assert.Equal(t, MintFunction, p.Function)
	assert.EqualValues(t, 42, p.FID)
	assert.Equal(t, "200000000000000", p.ValueWei)
	assert.Equal(t, "0.0002", p.Value)

	for _, bad := range [][2]string{
		{"0", "ipfs://bafyMeta/metadata-42.json"},
		{"x", "ipfs://bafyMeta/metadata-42.json"},
		{"42", "https://gateway.lighthouse.storage/ipfs/bafyMeta/metadata-42.json"},
		{"42", "ipfs://"},
	} {
		_, err := s.Params(bad[0], bad[1])
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", bad)
	}
}

func TestMintParamsUnconfigured(t *testing.T) {
	s, err := NewMintService(&MintConfig{Price: "0.0002"})
	require.NoError(t, err)

	_, err = s.Params("42", "ipfs://bafyMeta/metadata-42.json")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewMintService(&MintConfig{Price: "free"})
	assert.Error(t, err)
}
