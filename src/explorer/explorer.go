// Package explorer maps chain identifiers to block-explorer URLs. Pure
// presentation helper; nothing in swap execution depends on it.
package explorer

// Transaction URL prefixes per chain.
var explorers = map[int64]string{
	1:        "https://etherscan.io/tx/",
	5:        "https://goerli.etherscan.io/tx/",
	11155111: "https://sepolia.etherscan.io/tx/",

	42161:  "https://arbiscan.io/tx/",
	421613: "https://goerli.arbiscan.io/tx/",
	421614: "https://sepolia.arbiscan.io/tx/",

	1000: "https://cardanoscan.io/transaction/",
	1001: "https://preprod.cardanoscan.io/transaction/",
}

// Testnet counterparts for chains whose id names the mainnet deployment.
var testnetRemap = map[int64]int64{
	1:     11155111,
	42161: 421614,
	1000:  1001,
}

// TxURL returns the explorer link for a transaction hash. Unknown chains fall
// back to etherscan; a missing chain or hash yields "".
func TxURL(chainID int64, txHash string, testnet bool) string {
	if chainID == 0 || txHash == "" {
		return ""
	}
	if testnet {
		if remapped, ok := testnetRemap[chainID]; ok {
			chainID = remapped
		}
	}
	prefix, ok := explorers[chainID]
	if !ok {
		prefix = explorers[1]
	}
	return prefix + txHash
}
