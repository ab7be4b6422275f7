package service

import (
	"context"

	"metro-ticketing/internal/database"
	"metro-ticketing/internal/model"
	"metro-ticketing/internal/repository"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/shopspring/decimal"
)

type WalletService interface {
	Balance(ctx context.Context, passengerID int) (*model.WalletResponse, error)
	// TopUp 儲值：加餘額與記流水同一交易
	TopUp(ctx context.Context, passengerID int, amount decimal.Decimal) (*model.WalletTransaction, error)
	Transactions(ctx context.Context, passengerID int) ([]*model.WalletTransaction, error)
}

type WalletServiceImpl struct {
	tx   database.Transactor
	repo repository.WalletRepository
}

func NewWalletService(tx database.Transactor, repo repository.WalletRepository) WalletService {
	return &WalletServiceImpl{
		tx:   tx,
		repo: repo,
	}
}

func (s *WalletServiceImpl) Balance(ctx context.Context, passengerID int) (*model.WalletResponse, error) {
	balance, err := s.repo.GetBalance(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	return &model.WalletResponse{
		PassengerID: passengerID,
		Balance:     balance,
	}, nil
}

func (s *WalletServiceImpl) TopUp(ctx context.Context, passengerID int, amount decimal.Decimal) (*model.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidInput
	}

	var transaction *model.WalletTransaction
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		transaction, err = s.repo.Credit(ctx, passengerID, amount, "Wallet top-up")
		return err
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *WalletServiceImpl) Transactions(ctx context.Context, passengerID int) ([]*model.WalletTransaction, error) {
	return s.repo.Transactions(ctx, passengerID)
}
