package registry

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// identityRegistryABI covers the subset of the ERC-8004 identity registry used here.
const identityRegistryABI = `[
	{"type":"function","name":"register","stateMutability":"nonpayable",
	 "inputs":[{"name":"tokenURI","type":"string"}],
	 "outputs":[{"name":"agentId","type":"uint256"}]},
	{"type":"event","name":"Registered","anonymous":false,
	 "inputs":[
		{"name":"agentId","type":"uint256","indexed":true},
		{"name":"tokenURI","type":"string","indexed":false},
		{"name":"owner","type":"address","indexed":true}]}
]`

// Submitter records a token URI in the identity registry and returns the
// minted agent token id.
type Submitter interface {
	Submit(ctx context.Context, tokenURI string) (*big.Int, common.Hash, error)
	Wallet() common.Address
}

// Chain submits registrations to an identity registry contract.
type Chain struct {
	backend  bind.DeployBackend
	contract *bind.BoundContract
	abi      abi.ABI
	address  common.Address
	key      *ecdsa.PrivateKey
	chainID  *big.Int
}

// DialChain connects to rpcURL and binds the registry at address.
func DialChain(ctx context.Context, rpcURL, address, privateKey string, chainID int64) (*Chain, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid identity registry address %q", address)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(identityRegistryABI))
	if err != nil {
		return nil, fmt.Errorf("parse registry abi: %w", err)
	}

	addr := common.HexToAddress(address)
	return &Chain{
		backend:  client,
		contract: bind.NewBoundContract(addr, parsed, client, client, client),
		abi:      parsed,
		address:  addr,
		key:      key,
		chainID:  big.NewInt(chainID),
	}, nil
}

func (c *Chain) Wallet() common.Address {
	return crypto.PubkeyToAddress(c.key.PublicKey)
}

func (c *Chain) Submit(ctx context.Context, tokenURI string) (*big.Int, common.Hash, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: transactor: %v", ErrSubmit, err)
	}
	auth.Context = ctx

	tx, err := c.contract.Transact(auth, "register", tokenURI)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%w: %v", ErrSubmit, err)
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, tx.Hash(), fmt.Errorf("%w: wait for %s: %v", ErrSubmit, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, tx.Hash(), fmt.Errorf("%w: transaction %s reverted", ErrSubmit, tx.Hash().Hex())
	}

	id, err := registeredAgentID(c.abi, c.address, receipt.Logs)
	if err != nil {
		return nil, tx.Hash(), err
	}
	return id, tx.Hash(), nil
}

// registeredAgentID extracts the indexed agentId of the first Registered
// event emitted by registry.
func registeredAgentID(parsed abi.ABI, registry common.Address, logs []*types.Log) (*big.Int, error) {
	event, ok := parsed.Events["Registered"]
	if !ok {
		return nil, ErrNoRegistered
	}
	for _, l := range logs {
		if l.Address != registry || len(l.Topics) < 2 || l.Topics[0] != event.ID {
			continue
		}
		return new(big.Int).SetBytes(l.Topics[1].Bytes()), nil
	}
	return nil, ErrNoRegistered
}
