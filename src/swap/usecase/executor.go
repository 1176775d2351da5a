package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

// ExecutorService drives the full swap lifecycle:
//
//	Idle -> CheckingSupport -> CheckingBalance -> (Approving)? -> Submitting
//	     -> AwaitingConfirmation -> {Confirmed | Reverted}
//
// with Errored reachable from every non-terminal state. Steps are strictly
// sequential within one Execute call, and at most one Execute runs at a time.
type ExecutorService struct {
	pairs    *PairSupportService
	agg      domain.Aggregator
	wallet   domain.Wallet
	tracker  *Tracker
	logger   *logger.Logger
	spender  string
	testnet  bool
	inFlight atomic.Bool
}

func NewExecutorService(
	pairs *PairSupportService,
	agg domain.Aggregator,
	wallet domain.Wallet,
	tracker *Tracker,
	logg *logger.Logger,
	spender string,
	testnet bool,
) *ExecutorService {
	return &ExecutorService{
		pairs:   pairs,
		agg:     agg,
		wallet:  wallet,
		tracker: tracker,
		logger:  logg,
		spender: spender,
		testnet: testnet,
	}
}

// Execute runs one swap attempt end to end. It resolves to a SwapResult on
// confirmation or to an error wrapping one of the domain sentinels; it never
// leaves the tracker's current record stuck at pending. There is no automatic
// retry at any step; the caller re-invokes after a failure.
func (s *ExecutorService) Execute(ctx context.Context, req domain.SwapRequest) (*domain.SwapResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrExecutionInFlight
	}
	defer s.inFlight.Store(false)

	// Idle -> CheckingSupport preconditions, no I/O yet.
	if err := validateRequest(req); err != nil {
		return nil, s.fail(ctx, req, "", err)
	}

	if !s.pairs.IsSupported(ctx, req.FromToken, req.ToToken, s.testnet) {
		return nil, s.fail(ctx, req, "", domain.ErrUnsupportedPair)
	}

	// CheckingBalance. A failing balance query is non-fatal on purpose: the
	// on-chain step will surface the real error, and blocking the user on a
	// flaky collaborator is worse.
	amount, _ := domain.PositiveAmount(req.AmountIn)
	balance, err := s.wallet.Balance(ctx, req.FromToken, req.WalletAddress)
	if err != nil {
		s.logger.Warnf("balance check for %s failed, continuing: %v", req.FromToken.Symbol, err)
	} else if balance.LessThan(amount) {
		return nil, s.fail(ctx, req, "", domain.ErrInsufficientBalance)
	}

	tx := domain.Transaction{
		ID:         uuid.New().String(),
		Status:     domain.TxPending,
		Timestamp:  time.Now().UTC(),
		Request:    req,
		FromSymbol: req.FromToken.Symbol,
		ToSymbol:   req.ToToken.Symbol,
		AmountIn:   req.AmountIn,
	}
	if err := s.tracker.Record(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExecutionInFlight, err)
	}

	baseUnits, err := domain.ToBaseUnits(req.AmountIn, req.FromToken.Decimals)
	if err != nil {
		return nil, s.fail(ctx, req, tx.ID, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	// Approving: only for non-native source tokens.
	if !req.FromToken.IsNative() {
		if _, err := s.wallet.Approve(ctx, req.FromToken, s.spender, baseUnits); err != nil {
			if errors.Is(err, domain.ErrWalletRejected) {
				return nil, s.fail(ctx, req, tx.ID, err)
			}
			return nil, s.fail(ctx, req, tx.ID, fmt.Errorf("%w: %v", domain.ErrApprovalFailed, err))
		}
		s.logger.Infof("approved %s for spender %s", req.FromToken.Symbol, s.spender)
	}

	// Submitting: build the swap remotely, broadcast the payload verbatim.
	build, err := s.agg.BuildSwap(ctx, domain.AggregatorParams{
		FromToken:   req.FromToken,
		ToToken:     req.ToToken,
		AmountIn:    baseUnits.String(),
		SlippagePct: req.SlippagePct,
		Sender:      req.WalletAddress,
		Recipient:   req.WalletAddress,
		Testnet:     s.testnet,
	})
	if err != nil {
		return nil, s.fail(ctx, req, tx.ID, fmt.Errorf("%w: %v", domain.ErrRemoteQuote, err))
	}

	hash, err := s.wallet.SendTransaction(ctx, build.Tx)
	if err != nil {
		if errors.Is(err, domain.ErrWalletRejected) {
			return nil, s.fail(ctx, req, tx.ID, err)
		}
		return nil, s.fail(ctx, req, tx.ID, fmt.Errorf("%w: %v", domain.ErrRemoteQuote, err))
	}
	s.tracker.SetHash(ctx, tx.ID, hash)
	s.logger.Infof("swap submitted: %s %s -> %s tx=%s", req.AmountIn, req.FromToken.Symbol, req.ToToken.Symbol, hash)

	// AwaitingConfirmation.
	receipt, err := s.wallet.WaitMined(ctx, hash, req.ToToken)
	if err != nil {
		return nil, s.fail(ctx, req, tx.ID, fmt.Errorf("%w: %v", domain.ErrSwapReverted, err))
	}
	if !receipt.Success {
		return nil, s.fail(ctx, req, tx.ID, domain.ErrSwapReverted)
	}

	output := s.confirmedOutput(receipt, build, req.ToToken)
	s.tracker.Update(ctx, tx.ID, domain.TxSuccess, output, "")
	s.logger.Infof("swap confirmed: tx=%s out=%s %s", hash, output, req.ToToken.Symbol)

	return &domain.SwapResult{TxHash: hash, OutputAmount: output}, nil
}

// Watch resets the tracker whenever the wallet reports an account or chain
// switch; any tracked state belongs to the previous wallet session.
func (s *ExecutorService) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.wallet.StateChanges():
			if !ok {
				return
			}
			s.logger.Infof("wallet state changed, resetting tracked transaction")
			s.tracker.Reset()
		}
	}
}

// confirmedOutput prefers the on-chain transfer amount decoded from the
// receipt; absent that, the pre-submission quote from the build.
func (s *ExecutorService) confirmedOutput(receipt *domain.Receipt, build *domain.SwapBuild, to domain.Token) string {
	if receipt.OutputAmount != nil {
		return receipt.OutputAmount.String()
	}
	decimals := build.AmountOut.TokenDecimals
	if decimals == 0 {
		decimals = to.Decimals
	}
	out, err := domain.FromBaseUnits(build.AmountOut.Amount, decimals)
	if err != nil {
		s.logger.Errorf("decode quoted output %q: %v", build.AmountOut.Amount, err)
		return ""
	}
	return out
}

// fail marks the attempt errored. When no record was created yet (failures
// before the submitting path), an already-terminal record is written so the
// tracker never reports a dangling pending state.
func (s *ExecutorService) fail(ctx context.Context, req domain.SwapRequest, id string, cause error) error {
	if id != "" {
		s.tracker.Update(ctx, id, domain.TxError, "", cause.Error())
	} else {
		_ = s.tracker.Record(ctx, domain.Transaction{
			ID:         uuid.New().String(),
			Status:     domain.TxError,
			Timestamp:  time.Now().UTC(),
			Request:    req,
			FromSymbol: req.FromToken.Symbol,
			ToSymbol:   req.ToToken.Symbol,
			AmountIn:   req.AmountIn,
			FailReason: cause.Error(),
		})
	}
	s.logger.Errorf("swap %s -> %s failed: %v", req.FromToken.Symbol, req.ToToken.Symbol, cause)
	return cause
}

func validateRequest(req domain.SwapRequest) error {
	if req.WalletAddress == "" {
		return fmt.Errorf("%w: wallet not connected", domain.ErrValidation)
	}
	if req.FromToken.SameAsset(req.ToToken) {
		return fmt.Errorf("%w: identical from and to tokens", domain.ErrValidation)
	}
	if _, ok := domain.PositiveAmount(req.AmountIn); !ok {
		return fmt.Errorf("%w: amount must be a positive decimal", domain.ErrValidation)
	}
	return nil
}
