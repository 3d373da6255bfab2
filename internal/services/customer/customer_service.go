package customer

import (
	"context"

	"github.com/threadline/pos-service/internal/domain"
	"github.com/threadline/pos-service/internal/domain/ports"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

// Service implements sports.CustomerService
type Service struct {
	customers ports.CustomerRepository
	logger    ports.Logger
}

// NewService creates a new customer service
func NewService(customers ports.CustomerRepository, logger ports.Logger) *Service {
	return &Service{customers: customers, logger: logger}
}

func (s *Service) CreateCustomer(ctx context.Context, req sports.CreateCustomerRequest) (*domain.Customer, error) {
	if req.FirstName == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
			"first name is required").WithDetail("field", "first_name")
	}

	customer := &domain.Customer{
		ShopID:    req.ShopID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}

	id, err := s.customers.Create(ctx, nil, customer)
	if err != nil {
		s.logger.Error("create customer failed",
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}
	customer.ID = id
	return customer, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID, shopID int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, nil, customerID, shopID)
}

func (s *Service) ListCustomersByShop(ctx context.Context, shopID int64) ([]*domain.Customer, error) {
	return s.customers.ListByShop(ctx, nil, shopID)
}

func (s *Service) UpdateCustomer(ctx context.Context, req sports.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, nil, req.CustomerID, req.ShopID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if *req.FirstName == "" {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField,
				"first name cannot be empty").WithDetail("field", "first_name")
		}
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	if err := s.customers.Update(ctx, nil, customer); err != nil {
		s.logger.Error("update customer failed",
			ports.Int64("customer_id", req.CustomerID),
			ports.Int64("shop_id", req.ShopID),
			ports.Err(err))
		return nil, err
	}
	return customer, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, customerID, shopID int64) error {
	return s.customers.Delete(ctx, nil, customerID, shopID)
}
