package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

type DebtService interface {
	RecordDebt(customerName string, amount int64, description string, dueDate *time.Time) (*model.Debt, error)
	MarkPaid(debtID uuid.UUID) error
	DeleteDebt(debtID uuid.UUID) error

	Debt(debtID uuid.UUID) (*model.Debt, error)
	Debts() ([]model.Debt, error)
	ActiveDebts() ([]model.Debt, error)
	PaidDebts() ([]model.Debt, error)
	TotalActiveDebt() (int64, error)
}

func NewDebtService(repo model.DebtRepository, dispatcher EventDispatcher) DebtService {
	return &debtService{repo: repo, dispatcher: dispatcher}
}

type debtService struct {
	repo       model.DebtRepository
	dispatcher EventDispatcher
}

func (s *debtService) RecordDebt(customerName string, amount int64, description string, dueDate *time.Time) (*model.Debt, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, model.ErrEmptyCustomer
	}
	if amount <= 0 {
		return nil, model.ErrInvalidDebtValue
	}

	debtID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := now.Add(model.DefaultDebtTerm)
	if dueDate != nil {
		due = dueDate.UTC()
	}

	debt := &model.Debt{
		ID:           debtID,
		CustomerName: customerName,
		Amount:       amount,
		Description:  description,
		Status:       model.DebtStatusActive,
		DueDate:      due,
		CreatedAt:    now,
	}

	if err := s.repo.Create(debt); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.DebtRecorded{
		DebtID:       debtID,
		CustomerName: customerName,
		Amount:       amount,
	})

	return debt, nil
}

// MarkPaid settles an active debt. The transition is one-way and repeating it
// is a no-op; the original paid timestamp is kept.
func (s *debtService) MarkPaid(debtID uuid.UUID) error {
	debt, err := s.repo.Find(debtID)
	if err != nil {
		return err
	}
	if debt.Status == model.DebtStatusPaid {
		return nil
	}

	now := time.Now().UTC()
	debt.Status = model.DebtStatusPaid
	debt.PaidAt = &now

	if err := s.repo.Update(debt); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.DebtSettled{DebtID: debtID})
	return nil
}

func (s *debtService) DeleteDebt(debtID uuid.UUID) error {
	return s.repo.Delete(debtID)
}

func (s *debtService) Debt(debtID uuid.UUID) (*model.Debt, error) {
	return s.repo.Find(debtID)
}

func (s *debtService) Debts() ([]model.Debt, error) {
	return s.repo.List()
}

func (s *debtService) ActiveDebts() ([]model.Debt, error) {
	return s.filterDebts(model.DebtStatusActive)
}

func (s *debtService) PaidDebts() ([]model.Debt, error) {
	return s.filterDebts(model.DebtStatusPaid)
}

func (s *debtService) TotalActiveDebt() (int64, error) {
	active, err := s.ActiveDebts()
	if err != nil {
		return 0, err
	}

	var total int64
	for i := range active {
		total += active[i].Amount
	}
	return total, nil
}

func (s *debtService) filterDebts(status model.DebtStatus) ([]model.Debt, error) {
	debts, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Debt, 0, len(debts))
	for i := range debts {
		if debts[i].Status == status {
			filtered = append(filtered, debts[i])
		}
	}
	return filtered, nil
}
