package domain

// Static network table. Chain detection falls back to this when a token does
// not carry its own chain identifier.
var Networks = []Network{
	{ID: "ethereum", Name: "Ethereum", ChainID: 1},
	{ID: "arbitrum", Name: "Arbitrum", ChainID: 42161},
	{ID: "cardano", Name: "Cardano", ChainID: 2000},
}

// NetworkByID looks a network up by its string identifier.
func NetworkByID(id string) (Network, bool) {
	for _, n := range Networks {
		if n.ID == id {
			return n, true
		}
	}
	return Network{}, false
}

// Default slippage in percent, and the options surfaced to clients.
const DefaultSlippagePct = 0.5

var SlippageOptions = []float64{0.5, 1, 2, 5}

// DefaultTokens seeds the token selector before the remote token list loads.
var DefaultTokens = map[string][]Token{
	"ethereum": {
		{
			Symbol:   "ETH",
			Name:     "Ethereum",
			Decimals: 18,
			Network:  "ethereum",
			Address:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			ChainID:  1,
			Price:    3500,
		},
		{
			Symbol:   "USDT",
			Name:     "Tether USD",
			Decimals: 6,
			Network:  "ethereum",
			Address:  "0xdAC17F958D2ee523a2206206994597C13D831ec7",
			ChainID:  1,
			Price:    1,
		},
	},
	"arbitrum": {
		{
			Symbol:   "ARB",
			Name:     "Arbitrum",
			Decimals: 18,
			Network:  "arbitrum",
			Address:  "0x912CE59144191C1204E64559FE8253a0e49E6548",
			ChainID:  42161,
			Price:    1.2,
		},
		{
			Symbol:   "ETH",
			Name:     "Ethereum on Arbitrum",
			Decimals: 18,
			Network:  "arbitrum",
			Address:  "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
			ChainID:  42161,
			Price:    3500,
		},
	},
}
