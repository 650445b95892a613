package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/transport"
)

// AddressService is the address book; checkout consumes it read-only through
// FindOwned.
type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req transport.CreateAddressRequest) (*models.Address, error) {
	if req.FullName == "" || req.Phone == "" || req.Country == "" || req.City == "" || req.Line1 == "" {
		return nil, fmt.Errorf("%w: full_name, phone, country, city and line1 are required", ErrValidation)
	}

	addr := &models.Address{
		UserID:        userID,
		FullName:      req.FullName,
		Phone:         req.Phone,
		AltPhone:      req.AltPhone,
		Email:         req.Email,
		Country:       req.Country,
		State:         req.State,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Line1:         req.Line1,
		Line2:         req.Line2,
		Reference:     req.Reference,
		DeliveryNotes: req.DeliveryNotes,
		IsPrincipal:   req.IsPrincipal,
	}

	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)
		if addr.IsPrincipal {
			if err := r.ClearPrincipal(ctx, userID); err != nil {
				return err
			}
		}
		return r.CreateAddress(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) FindOwned(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	addr, err := s.Repo.FindOwnedAddress(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req transport.CreateAddressRequest) (*models.Address, error) {
	var addr *models.Address
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		var err error
		addr, err = r.FindOwnedAddress(ctx, userID, addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			return err
		}

		if req.IsPrincipal && !addr.IsPrincipal {
			if err := r.ClearPrincipal(ctx, userID); err != nil {
				return err
			}
		}

		addr.FullName = req.FullName
		addr.Phone = req.Phone
		addr.AltPhone = req.AltPhone
		addr.Email = req.Email
		addr.Country = req.Country
		addr.State = req.State
		addr.City = req.City
		addr.PostalCode = req.PostalCode
		addr.Line1 = req.Line1
		addr.Line2 = req.Line2
		addr.Reference = req.Reference
		addr.DeliveryNotes = req.DeliveryNotes
		addr.IsPrincipal = req.IsPrincipal
		return r.SaveAddress(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.Repo.DeleteAddress(ctx, userID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}
