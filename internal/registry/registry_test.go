package registry_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/agent-starter/internal/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v4"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "pinata",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestNew_Disabled(t *testing.T) {
	valid := signedJWT(t, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		cfg        registry.Config
		wantReason string
	}{
		{
			name:       "no settings",
			cfg:        registry.Config{},
			wantReason: "missing rpc_url, private_key, pinata_jwt, identity_registry",
		},
		{
			name: "missing registry",
			cfg: registry.Config{
				RPCURL:     "http://127.0.0.1:8545",
				PrivateKey: "0x01",
				PinataJWT:  valid,
			},
			wantReason: "missing identity_registry",
		},
		{
			name: "malformed jwt",
			cfg: registry.Config{
				RPCURL:           "http://127.0.0.1:8545",
				PrivateKey:       "0x01",
				PinataJWT:        "not-a-jwt",
				IdentityRegistry: "0x0000000000000000000000000000000000000001",
			},
			wantReason: "parse pinata jwt",
		},
		{
			name: "expired jwt",
			cfg: registry.Config{
				RPCURL:           "http://127.0.0.1:8545",
				PrivateKey:       "0x01",
				PinataJWT:        signedJWT(t, time.Now().Add(-time.Hour)),
				IdentityRegistry: "0x0000000000000000000000000000000000000001",
			},
			wantReason: "pinata jwt expired",
		},
		{
			name: "bad registry address",
			cfg: registry.Config{
				RPCURL:           "http://127.0.0.1:8545",
				PrivateKey:       "0x01",
				PinataJWT:        valid,
				IdentityRegistry: "registry",
			},
			wantReason: "invalid identity registry address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := registry.New(context.Background(), &tt.cfg, discard())

			if r.Enabled() {
				t.Fatal("Enabled() = true, want false")
			}
			d, ok := r.(registry.Disabled)
			if !ok {
				t.Fatalf("registrar = %T, want registry.Disabled", r)
			}
			if !strings.Contains(d.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", d.Reason, tt.wantReason)
			}

			_, err := r.Register(context.Background(), registry.Registration{Name: "Scout"})
			if !errors.Is(err, registry.ErrDisabled) {
				t.Errorf("Register() error = %v, want ErrDisabled", err)
			}
		})
	}
}

func TestPinata_Pin(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"IpfsHash":"bafycid","PinSize":10}`))
	}))
	defer srv.Close()

	p := registry.NewPinata(srv.URL, "jwt-token", srv.Client())

	cid, err := p.Pin(context.Background(), "Scout", map[string]string{"name": "Scout"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cid != "bafycid" {
		t.Errorf("Pin() = %q, want %q", cid, "bafycid")
	}
	if gotAuth != "Bearer jwt-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer jwt-token")
	}
	meta, _ := gotBody["pinataMetadata"].(map[string]any)
	if meta["name"] != "Scout" {
		t.Errorf("pinataMetadata = %v, want name Scout", gotBody["pinataMetadata"])
	}
	if _, ok := gotBody["pinataContent"]; !ok {
		t.Error("pinataContent missing")
	}
}

func TestPinata_PinFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"no hash", http.StatusOK, `{}`},
		{"not json", http.StatusOK, `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := registry.NewPinata(srv.URL, "jwt", srv.Client())
			if _, err := p.Pin(context.Background(), "Scout", struct{}{}); !errors.Is(err, registry.ErrPin) {
				t.Errorf("Pin() error = %v, want ErrPin", err)
			}
		})
	}
}

type fakePinner struct {
	cid string
	err error
	doc any
}

func (f *fakePinner) Pin(ctx context.Context, name string, doc any) (string, error) {
	f.doc = doc
	return f.cid, f.err
}

type fakeSubmitter struct {
	uri string
	err error
}

func (f *fakeSubmitter) Submit(ctx context.Context, tokenURI string) (*big.Int, common.Hash, error) {
	f.uri = tokenURI
	if f.err != nil {
		return nil, common.Hash{}, f.err
	}
	return big.NewInt(42), common.HexToHash("0xabc"), nil
}

func (f *fakeSubmitter) Wallet() common.Address {
	return common.HexToAddress("0x00000000000000000000000000000000000000aa")
}

func testConfig() *registry.Config {
	return &registry.Config{ChainID: 11155111, TrustModels: []string{"reputation"}, Timeout: "5s"}
}

func TestService_Register(t *testing.T) {
	pinner := &fakePinner{cid: "bafycid"}
	submitter := &fakeSubmitter{}
	svc := registry.NewService(pinner, submitter, testConfig(), discard())

	if !svc.Enabled() {
		t.Error("Enabled() = false, want true")
	}

	receipt, err := svc.Register(context.Background(), registry.Registration{
		Name:        "Scout",
		A2AEndpoint: "http://localhost:3000/api/plugins/starter/a2a-card?agentId=1",
		A2AVersion:  "0.30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.AgentID != "11155111:42" {
		t.Errorf("AgentID = %q, want %q", receipt.AgentID, "11155111:42")
	}
	if receipt.AgentURI != "ipfs://bafycid" {
		t.Errorf("AgentURI = %q, want %q", receipt.AgentURI, "ipfs://bafycid")
	}
	if submitter.uri != "ipfs://bafycid" {
		t.Errorf("submitted uri = %q, want %q", submitter.uri, "ipfs://bafycid")
	}

	doc, ok := pinner.doc.(registry.Document)
	if !ok {
		t.Fatalf("pinned %T, want registry.Document", pinner.doc)
	}
	if doc.Type != registry.RegistrationType {
		t.Errorf("Type = %q", doc.Type)
	}
}

func TestService_RegisterFailures(t *testing.T) {
	t.Run("pin", func(t *testing.T) {
		svc := registry.NewService(&fakePinner{err: registry.ErrPin}, &fakeSubmitter{}, testConfig(), discard())

		receipt, err := svc.Register(context.Background(), registry.Registration{Name: "Scout"})
		if !errors.Is(err, registry.ErrPin) {
			t.Errorf("error = %v, want ErrPin", err)
		}
		if receipt != nil {
			t.Errorf("receipt = %+v, want nil", receipt)
		}
	})

	t.Run("submit", func(t *testing.T) {
		svc := registry.NewService(&fakePinner{cid: "bafycid"}, &fakeSubmitter{err: registry.ErrSubmit}, testConfig(), discard())

		receipt, err := svc.Register(context.Background(), registry.Registration{Name: "Scout"})
		if !errors.Is(err, registry.ErrSubmit) {
			t.Errorf("error = %v, want ErrSubmit", err)
		}
		if receipt == nil || receipt.AgentURI != "ipfs://bafycid" {
			t.Errorf("receipt = %+v, want the pinned uri", receipt)
		}
	})
}

func TestNewDocument(t *testing.T) {
	reg := registry.Registration{
		Name:        "Scout",
		Description: "Scouts ahead",
		Image:       "https://example.com/scout.png",
		A2AEndpoint: "http://localhost:3000/card",
		A2AVersion:  "0.30",
	}

	doc := registry.NewDocument(reg, 11155111, "0xAA", "scout.eth", []string{"reputation"})

	want := []registry.Endpoint{
		{Name: "A2A", Endpoint: "http://localhost:3000/card", Version: "0.30"},
		{Name: "ENS", Endpoint: "scout.eth", Version: "v1"},
		{Name: "agentWallet", Endpoint: "eip155:11155111:0xAA"},
	}
	if len(doc.Endpoints) != len(want) {
		t.Fatalf("Endpoints = %+v, want %+v", doc.Endpoints, want)
	}
	for i := range want {
		if doc.Endpoints[i] != want[i] {
			t.Errorf("Endpoints[%d] = %+v, want %+v", i, doc.Endpoints[i], want[i])
		}
	}

	bare := registry.NewDocument(registry.Registration{Name: "Scout"}, 1, "", "", nil)
	if len(bare.Endpoints) != 0 {
		t.Errorf("Endpoints = %+v, want none", bare.Endpoints)
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_REGISTRY_CHAIN_ID", "84532")
	t.Setenv("TEST_REGISTRY_TRUST", "reputation, crypto-economic")

	cfg := &registry.Config{}
	err := cfg.Finalize(&registry.Env{
		ChainID:     "TEST_REGISTRY_CHAIN_ID",
		TrustModels: "TEST_REGISTRY_TRUST",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ChainID != 84532 {
		t.Errorf("ChainID = %d, want 84532", cfg.ChainID)
	}
	if len(cfg.TrustModels) != 2 || cfg.TrustModels[1] != "crypto-economic" {
		t.Errorf("TrustModels = %v", cfg.TrustModels)
	}
	if cfg.PinataEndpoint != registry.DefaultPinataEndpoint {
		t.Errorf("PinataEndpoint = %q", cfg.PinataEndpoint)
	}
	if cfg.TimeoutDuration() != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 2m", cfg.TimeoutDuration())
	}
	if len(cfg.Missing()) != 4 {
		t.Errorf("Missing() = %v, want 4 entries", cfg.Missing())
	}

	bad := &registry.Config{Timeout: "soon"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("expected error for invalid timeout")
	}
}
