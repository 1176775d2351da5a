package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string
	Env         string
	Testnet     bool
	DatabaseURL string
	Symbiosis   SymbiosisConfig
	Ethereum    EthereumConfig
}

type SymbiosisConfig struct {
	MainnetBaseURL string
	TestnetBaseURL string
	// RequestTimeout bounds quote/build calls; RouteCheckTimeout bounds the
	// pair-support capability query, which is allowed a much shorter deadline.
	RequestTimeout    time.Duration
	RouteCheckTimeout time.Duration
}

type EthereumConfig struct {
	RPCURL     string
	PrivateKey string
	ChainID    int64
	// SpenderAddress is the router gateway granted ERC-20 allowances before a swap.
	SpenderAddress string
}

// LoadFromEnv reads configuration from environment variables with fallback defaults.
// It also loads `.env` if present (for local development).
func LoadFromEnv() *Config {
	// Load .env if exists, ignore error if no file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, relying on environment variables")
	}

	listenAddr := getEnv("LISTEN_ADDR", ":8080")
	env := getEnv("ENV", "dev")
	testnet := getEnv("NETWORK_MODE", "mainnet") == "testnet"

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required")
	}

	requestTimeout, err := time.ParseDuration(getEnv("SYMBIOSIS_REQUEST_TIMEOUT", "15s"))
	if err != nil {
		log.Fatalf("[FATAL] Invalid SYMBIOSIS_REQUEST_TIMEOUT duration: %v", err)
	}
	routeTimeout, err := time.ParseDuration(getEnv("SYMBIOSIS_ROUTE_CHECK_TIMEOUT", "5s"))
	if err != nil {
		log.Fatalf("[FATAL] Invalid SYMBIOSIS_ROUTE_CHECK_TIMEOUT duration: %v", err)
	}

	chainID, err := strconv.ParseInt(getEnv("ETH_CHAIN_ID", "1"), 10, 64)
	if err != nil {
		log.Fatalf("[FATAL] Invalid ETH_CHAIN_ID: %v", err)
	}

	return &Config{
		ListenAddr:  listenAddr,
		Env:         env,
		Testnet:     testnet,
		DatabaseURL: databaseURL,
		Symbiosis: SymbiosisConfig{
			MainnetBaseURL:    getEnv("SYMBIOSIS_BASE_URL", "https://api-v2.symbiosis.finance/crosschain"),
			TestnetBaseURL:    getEnv("SYMBIOSIS_TESTNET_BASE_URL", "https://api.testnet.symbiosis.finance/crosschain"),
			RequestTimeout:    requestTimeout,
			RouteCheckTimeout: routeTimeout,
		},
		Ethereum: EthereumConfig{
			RPCURL:         os.Getenv("ETH_RPC_URL"),
			PrivateKey:     os.Getenv("ETH_PRIVATE_KEY"),
			ChainID:        chainID,
			SpenderAddress: os.Getenv("SWAP_SPENDER_ADDRESS"),
		},
	}
}

// helper to get env with default fallback
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
