package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/pkg/utils"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
)

// NUMERIC(10,2): two fractional digits, eight integer digits.
const (
	amountDecimalPlaces = 2
	amountMaxDigits     = 10
)

// --- Sale DTOs ---

// CreateSaleRequest is the body of POST /sales/ and PUT /sales/{id}/.
// saleDate is not accepted; it is always the creation date.
type CreateSaleRequest struct {
	Client *int64        `json:"client" binding:"required"`
	Amount *models.Money `json:"amount" binding:"required"`
}

// UpdateSaleRequest is the body of PATCH /sales/{id}/.
type UpdateSaleRequest struct {
	Client *int64        `json:"client"`
	Amount *models.Money `json:"amount"`
}

type SaleService interface {
	CreateSale(ctx context.Context, req CreateSaleRequest) (*models.Sale, error)
	GetSaleByID(ctx context.Context, saleID int64) (*models.Sale, error)
	GetSales(ctx context.Context, filter repositories.SaleFilter, page repositories.Page) ([]models.Sale, int, error)
	ReplaceSale(ctx context.Context, saleID int64, req CreateSaleRequest) (*models.Sale, error)
	UpdateSale(ctx context.Context, saleID int64, req UpdateSaleRequest) (*models.Sale, error)
	DeleteSale(ctx context.Context, saleID int64) error
}

type saleService struct {
	saleRepo   repositories.SaleRepository
	clientRepo repositories.ClientRepository
	now        func() time.Time
}

// NewSaleService creates a SaleService. now decides what "today" is for new
// sales; it should already be in the store's time zone.
func NewSaleService(saleRepo repositories.SaleRepository, clientRepo repositories.ClientRepository, now func() time.Time) SaleService {
	if now == nil {
		now = time.Now
	}
	return &saleService{saleRepo: saleRepo, clientRepo: clientRepo, now: now}
}

// ValidateAmount enforces amount >= 0 within NUMERIC(10,2). The digit checks
// run on the coefficient and exponent only; nothing is rescaled until the
// amount is known to fit.
func ValidateAmount(amount models.Money) string {
	integer, fraction := amount.Digits()
	switch {
	case amount.IsNegative():
		return "Ensure this value is greater than or equal to 0."
	case fraction > amountDecimalPlaces:
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", amountDecimalPlaces)
	case integer > amountMaxDigits-amountDecimalPlaces:
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", amountMaxDigits)
	}
	return ""
}

func clientDoesNotExist(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// applyFields validates client/amount and copies them onto sale.
func (s *saleService) applyFields(ctx context.Context, sale *models.Sale, clientID *int64, amount *models.Money, required bool) error {
	v := violations{}

	if clientID == nil {
		if required {
			v.add("client", msgRequired)
		}
	} else {
		_, err := s.clientRepo.GetClientByID(ctx, *clientID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			v.add("client", clientDoesNotExist(*clientID))
		case err != nil:
			return fmt.Errorf("failed to look up client %d: %w", *clientID, err)
		default:
			sale.ClientID = *clientID
		}
	}

	if amount == nil {
		if required {
			v.add("amount", msgRequired)
		}
	} else if msg := ValidateAmount(*amount); msg != "" {
		v.add("amount", msg)
	} else {
		sale.Amount = models.MoneyFromDecimal(amount.Round(amountDecimalPlaces))
	}

	return v.err()
}

func mapSaleWriteError(err error, clientID int64) error {
	if errors.Is(err, repositories.ErrForeignKey) {
		return newValidationError("client", clientDoesNotExist(clientID))
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSaleNotFound
	}
	return err
}

func (s *saleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*models.Sale, error) {
	sale := &models.Sale{}
	if err := s.applyFields(ctx, sale, req.Client, req.Amount, true); err != nil {
		return nil, err
	}
	sale.SaleDate = models.NewDate(s.now())

	if _, err := s.saleRepo.CreateSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", mapSaleWriteError(err, sale.ClientID))
	}
	utils.LogDebug("Sale created", map[string]interface{}{"sale_id": sale.ID, "client_id": sale.ClientID, "sale_date": sale.SaleDate.String()})
	return sale, nil
}

func (s *saleService) GetSaleByID(ctx context.Context, saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}
	return sale, nil
}

func (s *saleService) GetSales(ctx context.Context, filter repositories.SaleFilter, page repositories.Page) ([]models.Sale, int, error) {
	sales, totalCount, err := s.saleRepo.GetSales(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, totalCount, nil
}

func (s *saleService) ReplaceSale(ctx context.Context, saleID int64, req CreateSaleRequest) (*models.Sale, error) {
	return s.update(ctx, saleID, req.Client, req.Amount, true)
}

func (s *saleService) UpdateSale(ctx context.Context, saleID int64, req UpdateSaleRequest) (*models.Sale, error) {
	return s.update(ctx, saleID, req.Client, req.Amount, false)
}

func (s *saleService) update(ctx context.Context, saleID int64, clientID *int64, amount *models.Money, full bool) (*models.Sale, error) {
	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := s.applyFields(ctx, sale, clientID, amount, full); err != nil {
		return nil, err
	}

	if err := s.saleRepo.UpdateSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", mapSaleWriteError(err, sale.ClientID))
	}
	utils.LogDebug("Sale updated", map[string]interface{}{"sale_id": saleID, "full": full})
	return sale, nil
}

func (s *saleService) DeleteSale(ctx context.Context, saleID int64) error {
	if err := s.saleRepo.DeleteSale(ctx, saleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	utils.LogDebug("Sale deleted", map[string]interface{}{"sale_id": saleID})
	return nil
}
