package service

import (
	"errors"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor string) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, actor string) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	GetAllUsers() ([]model.UserResponse, error)
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	FullName string     `json:"full_name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=admin manager employee"`
}

type UpdateUserRequest struct {
	FullName *string     `json:"full_name"`
	Role     *model.Role `json:"role"`
	IsActive *bool       `json:"is_active"`
	Password *string     `json:"password"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor string) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	if existing, err := s.userRepo.FindByEmail(req.Email); err == nil && existing != nil {
		return nil, apperr.Validation("email %s is already registered", req.Email)
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = actor
	user.UpdatedBy = actor
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, actor string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user", id.String())
	}
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, apperr.Validation("full name must not be empty")
		}
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperr.Validation("unknown role %q", *req.Role)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, apperr.Validation("password must be at least 8 characters")
		}
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	user.UpdatedBy = actor
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user", id.String())
		}
		return err
	}
	return s.userRepo.Delete(id)
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user", id.String())
	}
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}
