package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/pkg/utils"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

const maxFullNameLength = 255

// --- Client DTOs ---

// CreateClientRequest is the body of POST /clients/ and PUT /clients/{id}/.
type CreateClientRequest struct {
	FullName  string `json:"fullName" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	BirthDate string `json:"birthDate" binding:"required,datetime=2006-01-02"`
}

// UpdateClientRequest is the body of PATCH /clients/{id}/. Nil fields are left unchanged.
type UpdateClientRequest struct {
	FullName  *string `json:"fullName" binding:"omitempty,min=1,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	GetClientByID(ctx context.Context, clientID int64) (*models.Client, error)
	GetClients(ctx context.Context, filter repositories.ClientFilter, page repositories.Page) ([]models.Client, int, error)
	ReplaceClient(ctx context.Context, clientID int64, req CreateClientRequest) (*models.Client, error)
	UpdateClient(ctx context.Context, clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: repo}
}

// applyFields validates the supplied fields and copies them onto client.
// A nil pointer means "not supplied"; required lists fields that must be supplied.
func (s *clientService) applyFields(ctx context.Context, client *models.Client, fullName, email, birthDate *string, required bool) error {
	v := violations{}

	if fullName == nil {
		if required {
			v.add("fullName", msgRequired)
		}
	} else if utils.IsEmpty(*fullName) {
		v.add("fullName", msgBlank)
	} else if len([]rune(*fullName)) > maxFullNameLength {
		v.add("fullName", fmt.Sprintf("Ensure this field has no more than %d characters.", maxFullNameLength))
	} else {
		client.FullName = strings.TrimSpace(*fullName)
	}

	if email == nil {
		if required {
			v.add("email", msgRequired)
		}
	} else {
		em := strings.TrimSpace(*email)
		if !utils.IsValidEmail(em) {
			v.add("email", msgEmail)
		} else {
			taken, err := s.emailTakenByOther(ctx, em, client.ID)
			if err != nil {
				return err
			}
			if taken {
				v.add("email", msgEmailExists)
			}
			client.Email = em
		}
	}

	if birthDate == nil {
		if required {
			v.add("birthDate", msgRequired)
		}
	} else {
		dob, err := models.ParseDate(strings.TrimSpace(*birthDate))
		if err != nil {
			v.add("birthDate", msgDateFormat)
		} else {
			client.BirthDate = dob
		}
	}

	return v.err()
}

func (s *clientService) emailTakenByOther(ctx context.Context, email string, clientID int64) (bool, error) {
	existing, err := s.clientRepo.GetClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return existing.ID != clientID, nil
}

// mapClientWriteError converts a lost race on clients_email_key into the same
// validation error the pre-check would have produced.
func mapClientWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return newValidationError("email", msgEmailExists)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	client := &models.Client{}
	if err := s.applyFields(ctx, client, &req.FullName, &req.Email, &req.BirthDate, true); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", mapClientWriteError(err))
	}
	utils.LogDebug("Client created", map[string]interface{}{"client_id": client.ID})
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(ctx context.Context, filter repositories.ClientFilter, page repositories.Page) ([]models.Client, int, error) {
	clients, totalCount, err := s.clientRepo.GetClients(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

func (s *clientService) ReplaceClient(ctx context.Context, clientID int64, req CreateClientRequest) (*models.Client, error) {
	return s.update(ctx, clientID, &req.FullName, &req.Email, &req.BirthDate, true)
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req UpdateClientRequest) (*models.Client, error) {
	return s.update(ctx, clientID, req.FullName, req.Email, req.BirthDate, false)
}

func (s *clientService) update(ctx context.Context, clientID int64, fullName, email, birthDate *string, full bool) (*models.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := s.applyFields(ctx, client, fullName, email, birthDate, full); err != nil {
		return nil, err
	}

	if err := s.clientRepo.UpdateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", mapClientWriteError(err))
	}
	utils.LogDebug("Client updated", map[string]interface{}{"client_id": clientID, "full": full})
	return client, nil
}

// DeleteClient removes the client together with all of their sales.
func (s *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	utils.LogDebug("Client deleted", map[string]interface{}{"client_id": clientID})
	return nil
}
