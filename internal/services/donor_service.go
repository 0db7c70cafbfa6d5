package services

import (
	"errors"

	"bloodbridge_backend/internal/auth"
	"bloodbridge_backend/internal/logger"
	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"
	"bloodbridge_backend/internal/services/dto"
	"bloodbridge_backend/pkg/apperrors"
)

type DonorService interface {
	// Registration and authentication
	RegisterDonor(req *dto.RegisterDonorRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)

	// Profile
	GetProfile(donorID string) (*dto.DonorResponse, error)
	UpdateProfile(donorID string, req *dto.UpdateDonorRequest) (*dto.DonorResponse, error)
	DeleteAccount(donorID string) error
	ListDonors(page, pageSize int) (*dto.DonorListResponse, error)

	// Donation history
	AddDonationRecord(donorID string, req *dto.DonationRecordRequest) (*dto.DonationRecordResponse, error)
	GetDonationHistory(donorID string) ([]dto.DonationRecordResponse, error)
}

type donorService struct {
	donorRepo    repositories.DonorRepository
	donationRepo repositories.DonationRepository
	tokens       *auth.TokenService
}

func NewDonorService(
	donorRepo repositories.DonorRepository,
	donationRepo repositories.DonationRepository,
	tokens *auth.TokenService,
) DonorService {
	return &donorService{
		donorRepo:    donorRepo,
		donationRepo: donationRepo,
		tokens:       tokens,
	}
}

// -------------------------------
// Registration and authentication
// -------------------------------

func (s *donorService) RegisterDonor(req *dto.RegisterDonorRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.donorRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	donor := &models.Donor{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Phone:             req.Phone,
		BloodGroup:        models.BloodGroup(req.BloodGroup),
		City:              req.City,
		State:             req.State,
		Age:               req.Age,
		Weight:            req.Weight,
		Available:         available,
		LastDonationDate:  req.LastDonationDate,
		MedicalConditions: req.MedicalConditions,
	}

	if err := s.donorRepo.CreateDonor(donor); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "donor", "Failed to register donor", 500)
	}

	token, err := s.tokens.GenerateToken(donor.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("donor registered", "donor_id", donor.ID, "city", donor.City)

	return &dto.AuthResponse{
		Token: token,
		Donor: dto.NewDonorResponse(donor),
	}, nil
}

func (s *donorService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	donor, err := s.donorRepo.FindDonorByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrDonorNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPassword(donor.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(donor.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		Donor: dto.NewDonorResponse(donor),
	}, nil
}

// -------------------------------
// Profile
// -------------------------------

func (s *donorService) GetProfile(donorID string) (*dto.DonorResponse, error) {
	donor, err := s.donorRepo.FindDonorByID(donorID)
	if err != nil {
		if errors.Is(err, repositories.ErrDonorNotFound) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewDonorResponse(donor), nil
}

func (s *donorService) UpdateProfile(donorID string, req *dto.UpdateDonorRequest) (*dto.DonorResponse, error) {
	donor, err := s.donorRepo.FindDonorByID(donorID)
	if err != nil {
		if errors.Is(err, repositories.ErrDonorNotFound) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		donor.Name = *req.Name
	}
	if req.Phone != nil {
		donor.Phone = *req.Phone
	}
	if req.City != nil {
		donor.City = *req.City
	}
	if req.State != nil {
		donor.State = *req.State
	}
	if req.Age != nil {
		donor.Age = *req.Age
	}
	if req.Weight != nil {
		donor.Weight = *req.Weight
	}
	if req.Available != nil {
		donor.Available = *req.Available
	}
	if req.LastDonationDate != nil {
		donor.LastDonationDate = req.LastDonationDate
	}
	if req.MedicalConditions != nil {
		donor.MedicalConditions = *req.MedicalConditions
	}

	if err := s.donorRepo.UpdateDonor(donor); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewDonorResponse(donor), nil
}

// DeleteAccount удаляет донора вместе с уведомлениями и историей донаций
func (s *donorService) DeleteAccount(donorID string) error {
	err := s.donorRepo.DeleteDonor(donorID)
	if err != nil {
		if errors.Is(err, repositories.ErrDonorNotFound) {
			return apperrors.ErrDonorNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.Info("donor account deleted", "donor_id", donorID)
	return nil
}

func (s *donorService) ListDonors(page, pageSize int) (*dto.DonorListResponse, error) {
	donors, total, err := s.donorRepo.FindAllDonors(page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.DonorResponse, 0, len(donors))
	for i := range donors {
		items = append(items, *dto.NewDonorResponse(&donors[i]))
	}

	return &dto.DonorListResponse{
		Donors:   items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// -------------------------------
// Donation history
// -------------------------------

// AddDonationRecord добавляет запись о донации и сдвигает
// last_donation_date донора, если донация свежее текущей отметки.
func (s *donorService) AddDonationRecord(donorID string, req *dto.DonationRecordRequest) (*dto.DonationRecordResponse, error) {
	donor, err := s.donorRepo.FindDonorByID(donorID)
	if err != nil {
		if errors.Is(err, repositories.ErrDonorNotFound) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	units := req.UnitsGiven
	if units == 0 {
		units = 1
	}

	record := &models.DonationRecord{
		DonorID:      donor.ID,
		DonationDate: req.DonationDate,
		Location:     req.Location,
		BloodBank:    req.BloodBank,
		UnitsGiven:   units,
		Notes:        req.Notes,
	}

	if err := s.donationRepo.CreateDonationRecord(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if donor.LastDonationDate == nil || donor.LastDonationDate.Before(req.DonationDate) {
		fields := map[string]interface{}{"last_donation_date": req.DonationDate}
		if err := s.donorRepo.UpdateDonorFields(donor.ID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return &dto.DonationRecordResponse{
		ID:           record.ID,
		DonationDate: record.DonationDate,
		Location:     record.Location,
		BloodBank:    record.BloodBank,
		UnitsGiven:   record.UnitsGiven,
		Notes:        record.Notes,
	}, nil
}

func (s *donorService) GetDonationHistory(donorID string) ([]dto.DonationRecordResponse, error) {
	records, err := s.donationRepo.FindDonationsByDonor(donorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.DonationRecordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.DonationRecordResponse{
			ID:           record.ID,
			DonationDate: record.DonationDate,
			Location:     record.Location,
			BloodBank:    record.BloodBank,
			UnitsGiven:   record.UnitsGiven,
			Notes:        record.Notes,
		})
	}

	return items, nil
}
