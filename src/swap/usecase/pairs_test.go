package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikron/swapd/src/swap/domain"
)

func TestIsSupportedUnidentifiableToken(t *testing.T) {
	agg := &fakeAggregator{}
	svc := NewPairSupportService(agg, testLogger())

	missingAddr := ethToken()
	missingAddr.Address = ""

	require.False(t, svc.IsSupported(context.Background(), missingAddr, usdtToken(), false))

	unknownChain := ethToken()
	unknownChain.ChainID = 0
	unknownChain.Network = "nowhere"
	require.False(t, svc.IsSupported(context.Background(), unknownChain, usdtToken(), false))

	require.Zero(t, agg.routeCalls)
}

func TestIsSupportedTestnetPermissive(t *testing.T) {
	agg := &fakeAggregator{}
	svc := NewPairSupportService(agg, testLogger())

	obscureA := domain.Token{Symbol: "AAA", Address: "0xaa", Network: "ethereum", ChainID: 1}
	obscureB := domain.Token{Symbol: "BBB", Address: "0xbb", Network: "ethereum", ChainID: 1}

	require.True(t, svc.IsSupported(context.Background(), obscureA, obscureB, true))
	require.Zero(t, agg.routeCalls)
}

// Cross-chain pairs are answered from the static tier even when the remote
// capability endpoint is down.
func TestIsSupportedCrossChainWithoutRemoteQuery(t *testing.T) {
	agg := &fakeAggregator{routesErr: errBoom}
	svc := NewPairSupportService(agg, testLogger())

	require.True(t, svc.IsSupported(context.Background(), ethToken(), arbToken(), false))
	require.Zero(t, agg.routeCalls)
}

func TestIsSupportedMajorsAllowList(t *testing.T) {
	agg := &fakeAggregator{routesErr: errBoom}
	svc := NewPairSupportService(agg, testLogger())

	require.True(t, svc.IsSupported(context.Background(), ethToken(), usdtToken(), false))
	require.Zero(t, agg.routeCalls)
}

func TestIsSupportedStaticTiersOrderIndependent(t *testing.T) {
	agg := &fakeAggregator{}
	svc := NewPairSupportService(agg, testLogger())

	sis := domain.Token{Symbol: "SIS", Address: "0x51", Network: "ethereum", ChainID: 1}
	eth := ethToken()

	require.True(t, svc.IsSupported(context.Background(), sis, eth, false))
	require.True(t, svc.IsSupported(context.Background(), eth, sis, false))
	require.Zero(t, agg.routeCalls)
}

func TestIsSupportedRemoteRouteTier(t *testing.T) {
	obscureA := domain.Token{Symbol: "AAA", Address: "0xaa", Network: "ethereum", ChainID: 1}
	obscureB := domain.Token{Symbol: "BBB", Address: "0xbb", Network: "ethereum", ChainID: 1}

	agg := &fakeAggregator{routes: 2}
	svc := NewPairSupportService(agg, testLogger())
	require.True(t, svc.IsSupported(context.Background(), obscureA, obscureB, false))
	require.Equal(t, 1, agg.routeCalls)

	agg = &fakeAggregator{routes: 0}
	svc = NewPairSupportService(agg, testLogger())
	require.False(t, svc.IsSupported(context.Background(), obscureA, obscureB, false))
}

// A failing route query resolves to unsupported, never to an error.
func TestIsSupportedRemoteFailureMeansUnsupported(t *testing.T) {
	obscureA := domain.Token{Symbol: "AAA", Address: "0xaa", Network: "ethereum", ChainID: 1}
	obscureB := domain.Token{Symbol: "BBB", Address: "0xbb", Network: "ethereum", ChainID: 1}

	agg := &fakeAggregator{routesErr: errBoom}
	svc := NewPairSupportService(agg, testLogger())

	require.False(t, svc.IsSupported(context.Background(), obscureA, obscureB, false))
}
