package gateway

import (
	"sort"
	"strings"
	"sync"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/Animesh-Parashar/Basis-Zero/sdk"
)

// Registry maps the gateway's numeric domain ids to chains and their escrow
// contracts. It is seeded statically at startup and overwritten by Refresh;
// every update replaces whole entries, never partial fields.
type Registry struct {
	lock    sync.RWMutex
	domains map[uint32]schema.Domain
	byChain map[string]uint32
}

func NewRegistry(seed []schema.Domain) *Registry {
	r := &Registry{
		domains: make(map[uint32]schema.Domain),
		byChain: make(map[string]uint32),
	}
	for _, d := range seed {
		r.domains[d.DomainId] = d
		r.byChain[strings.ToLower(d.ChainName)] = d.DomainId
	}
	return r
}

// DefaultDomains is the static fallback table. Addresses here are the
// protocol's published deployments; they are treated as untrusted until the
// first successful Refresh against the gateway /info endpoint.
func DefaultDomains() []schema.Domain {
	wallet := "0x77777777Dcc4d5A8B6E418Fd04D8997ef11000eE"
	minter := "0x2222222d7164433c4C09B0b0D809a9b52C04C205"
	return []schema.Domain{
		{DomainId: 0, ChainName: "ethereum", ChainId: 1, WalletContract: wallet, MinterContract: minter},
		{DomainId: 1, ChainName: "avalanche", ChainId: 43114, WalletContract: wallet, MinterContract: minter},
		{DomainId: 2, ChainName: "optimism", ChainId: 10, WalletContract: wallet, MinterContract: minter},
		{DomainId: 3, ChainName: "arbitrum", ChainId: 42161, WalletContract: wallet, MinterContract: minter},
		{DomainId: 6, ChainName: "base", ChainId: 8453, WalletContract: wallet, MinterContract: minter},
		{DomainId: 7, ChainName: "polygon", ChainId: 137, WalletContract: wallet, MinterContract: minter},
	}
}

// Refresh overwrites contract addresses with whatever the gateway reports.
// Failures are logged and leave prior values in place; Refresh never returns
// an error to its caller.
func (r *Registry) Refresh(api *sdk.Client) {
	reported, err := api.Info()
	if err != nil {
		log.Warn("refresh domain registry failed", "err", err)
		return
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	for _, d := range reported {
		cur, ok := r.domains[d.DomainId]
		if !ok {
			r.domains[d.DomainId] = d
			r.byChain[strings.ToLower(d.ChainName)] = d.DomainId
			continue
		}
		if d.WalletContract != "" {
			cur.WalletContract = d.WalletContract
		}
		if d.MinterContract != "" {
			cur.MinterContract = d.MinterContract
		}
		if d.ChainId != 0 {
			cur.ChainId = d.ChainId
		}
		if d.ChainName != "" && !strings.EqualFold(d.ChainName, cur.ChainName) {
			delete(r.byChain, strings.ToLower(cur.ChainName))
			cur.ChainName = d.ChainName
			r.byChain[strings.ToLower(d.ChainName)] = d.DomainId
		}
		r.domains[d.DomainId] = cur
	}
	log.Debug("domain registry refreshed", "domains", len(reported))
}

func (r *Registry) Lookup(domainId uint32) (schema.Domain, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	d, ok := r.domains[domainId]
	if !ok {
		return schema.Domain{}, schema.ErrUnknownDomain
	}
	return d, nil
}

func (r *Registry) LookupByChainName(name string) (uint32, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	id, ok := r.byChain[strings.ToLower(name)]
	if !ok {
		return 0, schema.ErrUnsupportedChain
	}
	return id, nil
}

func (r *Registry) DomainIds() []uint32 {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ids := make([]uint32, 0, len(r.domains))
	for id := range r.domains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) Domains() []schema.Domain {
	ids := r.DomainIds()
	r.lock.RLock()
	defer r.lock.RUnlock()
	ds := make([]schema.Domain, 0, len(ids))
	for _, id := range ids {
		ds = append(ds, r.domains[id])
	}
	return ds
}
