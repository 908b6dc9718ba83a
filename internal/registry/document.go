package registry

import "fmt"

// RegistrationType identifies the ERC-8004 registration file format.
const RegistrationType = "https://eips.ethereum.org/EIPS/eip-8004#registration-v1"

// Registration is the agent information submitted for registration.
type Registration struct {
	Name        string
	Description string
	Image       string
	A2AEndpoint string
	A2AVersion  string
}

// Receipt describes a completed registration.
type Receipt struct {
	// AgentID is "{chainId}:{tokenId}".
	AgentID  string `json:"agentId"`
	AgentURI string `json:"agentUri"`
	TxHash   string `json:"txHash,omitempty"`
}

// Document is the registration file pinned to IPFS.
type Document struct {
	Type           string     `json:"type"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Image          string     `json:"image,omitempty"`
	Endpoints      []Endpoint `json:"endpoints"`
	SupportedTrust []string   `json:"supportedTrust,omitempty"`
}

// Endpoint is one advertised way to reach the agent.
type Endpoint struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Version  string `json:"version,omitempty"`
}

// NewDocument builds the registration file for reg. wallet is the
// registering account; an empty wallet omits the agentWallet endpoint.
func NewDocument(reg Registration, chainID int64, wallet, ens string, trust []string) Document {
	doc := Document{
		Type:           RegistrationType,
		Name:           reg.Name,
		Description:    reg.Description,
		Image:          reg.Image,
		Endpoints:      []Endpoint{},
		SupportedTrust: trust,
	}

	if reg.A2AEndpoint != "" {
		doc.Endpoints = append(doc.Endpoints, Endpoint{
			Name:     "A2A",
			Endpoint: reg.A2AEndpoint,
			Version:  reg.A2AVersion,
		})
	}
	if ens != "" {
		doc.Endpoints = append(doc.Endpoints, Endpoint{Name: "ENS", Endpoint: ens, Version: "v1"})
	}
	if wallet != "" {
		doc.Endpoints = append(doc.Endpoints, Endpoint{
			Name:     "agentWallet",
			Endpoint: fmt.Sprintf("eip155:%d:%s", chainID, wallet),
		})
	}
	return doc
}
