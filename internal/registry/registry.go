// Package registry publishes agents to an on-chain identity registry. The
// registration file is pinned to IPFS and its URI recorded by the registry
// contract.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Registrar registers newly created agents with an external identity registry.
type Registrar interface {
	Enabled() bool
	Register(ctx context.Context, reg Registration) (*Receipt, error)
}

// Disabled is the Registrar used when registration is not configured.
type Disabled struct {
	Reason string
}

func (Disabled) Enabled() bool {
	return false
}

func (d Disabled) Register(context.Context, Registration) (*Receipt, error) {
	return nil, fmt.Errorf("%w: %s", ErrDisabled, d.Reason)
}

// Service pins the registration file and submits its URI on chain.
type Service struct {
	pinner    Pinner
	submitter Submitter
	chainID   int64
	ens       string
	trust     []string
	timeout   time.Duration
	logger    *slog.Logger
}

func NewService(pinner Pinner, submitter Submitter, cfg *Config, logger *slog.Logger) *Service {
	return &Service{
		pinner:    pinner,
		submitter: submitter,
		chainID:   cfg.ChainID,
		ens:       cfg.ENS,
		trust:     cfg.TrustModels,
		timeout:   cfg.TimeoutDuration(),
		logger:    logger.With("system", "registry"),
	}
}

func (s *Service) Enabled() bool {
	return true
}

func (s *Service) Register(ctx context.Context, reg Registration) (*Receipt, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	doc := NewDocument(reg, s.chainID, s.submitter.Wallet().Hex(), s.ens, s.trust)

	cid, err := s.pinner.Pin(ctx, reg.Name, doc)
	if err != nil {
		return nil, err
	}
	uri := "ipfs://" + cid

	tokenID, txHash, err := s.submitter.Submit(ctx, uri)
	if err != nil {
		return &Receipt{AgentURI: uri}, err
	}

	receipt := &Receipt{
		AgentID:  fmt.Sprintf("%d:%s", s.chainID, tokenID.String()),
		AgentURI: uri,
		TxHash:   txHash.Hex(),
	}
	s.logger.Info("agent registered", "name", reg.Name, "agent_id", receipt.AgentID, "uri", uri)
	return receipt, nil
}

// New resolves the registrar once at startup. Missing or unusable settings
// produce a Disabled registrar rather than an error.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) Registrar {
	log := logger.With("system", "registry")

	if missing := cfg.Missing(); len(missing) > 0 {
		reason := "missing " + strings.Join(missing, ", ")
		log.Info("identity registration disabled", "reason", reason)
		return Disabled{Reason: reason}
	}

	if err := checkPinataJWT(cfg.PinataJWT, time.Now()); err != nil {
		log.Warn("identity registration disabled", "reason", err)
		return Disabled{Reason: err.Error()}
	}

	chain, err := DialChain(ctx, cfg.RPCURL, cfg.IdentityRegistry, cfg.PrivateKey, cfg.ChainID)
	if err != nil {
		log.Warn("identity registration disabled", "reason", err)
		return Disabled{Reason: err.Error()}
	}

	pinner := NewPinata(cfg.PinataEndpoint, cfg.PinataJWT, &http.Client{Timeout: cfg.TimeoutDuration()})

	log.Info("identity registration enabled",
		"registry", cfg.IdentityRegistry,
		"chain_id", cfg.ChainID,
		"wallet", chain.Wallet().Hex(),
	)
	return NewService(pinner, chain, cfg, logger)
}
