package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

var _ domain.TransactionRepository = (*TransactionRepo)(nil)

// ---------- SWAP TRANSACTIONS ----------
// gorm.Model includes:
// ID        uint `gorm:"primarykey"`
// CreatedAt time.Time
// UpdatedAt time.Time
// DeletedAt gorm.DeletedAt `gorm:"index"`
type SwapTransaction struct {
	gorm.Model

	SwapID       string    `json:"swap_id" gorm:"uniqueIndex"`
	Hash         string    `json:"hash" gorm:"index"`
	Status       string    `json:"status" gorm:"index"`
	SubmittedAt  time.Time `json:"submitted_at"`
	FromSymbol   string    `json:"from_symbol"`
	ToSymbol     string    `json:"to_symbol"`
	AmountIn     string    `json:"amount_in"`
	OutputAmount string    `json:"output_amount"`
	FailReason   string    `json:"fail_reason"`
}

// ---------- REPO ----------

type TransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, log *logger.Logger) *TransactionRepo {
	if err := db.AutoMigrate(&SwapTransaction{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	return &TransactionRepo{db: db, log: log}
}

// ---------- CRUD ----------

func (r *TransactionRepo) Save(ctx context.Context, tx *domain.Transaction) error {
	model := toModel(tx)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *TransactionRepo) Update(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Model(&SwapTransaction{}).
		Where("swap_id = ?", tx.ID).
		Updates(map[string]any{
			"hash":          tx.Hash,
			"status":        string(tx.Status),
			"output_amount": tx.OutputAmount,
			"fail_reason":   tx.FailReason,
		}).Error
}

func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var models []SwapTransaction
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]domain.Transaction, 0, len(models))
	for i := range models {
		out = append(out, *toDomain(&models[i]))
	}
	return out, nil
}

// ---------- MAPPING ----------

func toModel(tx *domain.Transaction) SwapTransaction {
	return SwapTransaction{
		SwapID:       tx.ID,
		Hash:         tx.Hash,
		Status:       string(tx.Status),
		SubmittedAt:  tx.Timestamp,
		FromSymbol:   tx.FromSymbol,
		ToSymbol:     tx.ToSymbol,
		AmountIn:     tx.AmountIn,
		OutputAmount: tx.OutputAmount,
		FailReason:   tx.FailReason,
	}
}

func toDomain(m *SwapTransaction) *domain.Transaction {
	return &domain.Transaction{
		ID:           m.SwapID,
		Hash:         m.Hash,
		Status:       domain.TxStatus(m.Status),
		Timestamp:    m.SubmittedAt,
		FromSymbol:   m.FromSymbol,
		ToSymbol:     m.ToSymbol,
		AmountIn:     m.AmountIn,
		OutputAmount: m.OutputAmount,
		FailReason:   m.FailReason,
	}
}
