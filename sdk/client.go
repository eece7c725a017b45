package sdk

import (
	"encoding/json"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"gopkg.in/h2non/gentleman.v2"
)

// Client is a thin typed wrapper over the attestation gateway http api.
// All integer-valued fields cross the wire as decimal strings.
type Client struct {
	SCli *gentleman.Client
}

func New(gatewayUrl string) *Client {
	return &Client{
		SCli: gentleman.New().URL(gatewayUrl),
	}
}

// Info returns the gateway's supported domains and their contract addresses.
func (c *Client) Info() ([]schema.Domain, error) {
	by, err := c.InfoRaw()
	if err != nil {
		return nil, err
	}
	info := schema.InfoResponse{}
	if err := json.Unmarshal(by, &info); err != nil {
		return nil, err
	}
	return info.Domains, nil
}

func (c *Client) InfoRaw() ([]byte, error) {
	req := c.SCli.Get()
	req.Path("/info")
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, schema.ExternalApiError{StatusCode: resp.StatusCode, Body: resp.String()}
	}
	return resp.Bytes(), nil
}

// Balances queries escrow balances for one depositor over the given domains
// in a single batched call.
func (c *Client) Balances(token, depositor string, domains []uint32) ([]schema.DomainBalance, error) {
	sources := make([]schema.BalanceSource, 0, len(domains))
	for _, d := range domains {
		sources = append(sources, schema.BalanceSource{Depositor: depositor, Domain: d})
	}
	req := c.SCli.Post()
	req.Path("/balances")
	req.JSON(schema.BalancesRequest{Token: token, Sources: sources})
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, schema.ExternalApiError{StatusCode: resp.StatusCode, Body: resp.String()}
	}
	br := schema.BalancesResponse{}
	err = resp.JSON(&br)
	return br.Balances, err
}

// Transfer submits a batch of signed burn intents; the gateway either attests
// every intent or fails the batch as a whole.
func (c *Client) Transfer(intents []schema.SignedBurnIntent) ([]schema.Attestation, error) {
	by, err := c.TransferRaw(intents)
	if err != nil {
		return nil, err
	}
	tr := schema.GatewayTransferResponse{}
	if err := json.Unmarshal(by, &tr); err != nil {
		return nil, err
	}
	return tr.Attestations, nil
}

func (c *Client) TransferRaw(intents []schema.SignedBurnIntent) ([]byte, error) {
	req := c.SCli.Post()
	req.Path("/transfer")
	req.JSON(schema.GatewayTransferRequest{BurnIntents: intents})
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, schema.ExternalApiError{StatusCode: resp.StatusCode, Body: resp.String()}
	}
	return resp.Bytes(), nil
}
