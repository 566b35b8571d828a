package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
)

// AddressService is the per-user address book. At most one address per user
// carries the default flag.
type AddressService struct {
	addresses AddressStore
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

type AddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func (in *AddressInput) validate() error {
	if in.Street == "" || in.City == "" || in.State == "" || in.PostalCode == "" || in.Country == "" {
		return fmt.Errorf("street, city, state, postal code and country are required: %w", ErrInvalidRequest)
	}
	return nil
}

func (s *AddressService) List(ctx context.Context, principal auth.Principal) ([]models.Address, error) {
	return s.addresses.FindByUser(ctx, principal.UserID)
}

func (s *AddressService) Create(ctx context.Context, principal auth.Principal, in AddressInput) (*models.Address, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if in.IsDefault {
		if err := s.addresses.ClearDefault(ctx, principal.UserID); err != nil {
			return nil, err
		}
	}

	address := &models.Address{
		UserID:     principal.UserID,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		IsDefault:  in.IsDefault,
	}
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddressInput carries only the fields to change; nil means keep.
type UpdateAddressInput struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	IsDefault  *bool   `json:"is_default"`
}

func (s *AddressService) Update(ctx context.Context, principal auth.Principal, id primitive.ObjectID, in UpdateAddressInput) (*models.Address, error) {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, fmt.Errorf("address not found: %w", ErrNotFound)
	}
	if address.UserID != principal.UserID {
		return nil, fmt.Errorf("not authorized to update this address: %w", ErrForbidden)
	}

	if in.IsDefault != nil && *in.IsDefault && !address.IsDefault {
		if err := s.addresses.ClearDefault(ctx, principal.UserID); err != nil {
			return nil, err
		}
	}

	if in.Street != nil {
		address.Street = *in.Street
	}
	if in.City != nil {
		address.City = *in.City
	}
	if in.State != nil {
		address.State = *in.State
	}
	if in.PostalCode != nil {
		address.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		address.Country = *in.Country
	}
	if in.IsDefault != nil {
		address.IsDefault = *in.IsDefault
	}

	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, principal auth.Principal, id primitive.ObjectID) error {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if address == nil {
		return fmt.Errorf("address not found: %w", ErrNotFound)
	}
	if address.UserID != principal.UserID {
		return fmt.Errorf("not authorized to delete this address: %w", ErrForbidden)
	}
	return s.addresses.Delete(ctx, id)
}
