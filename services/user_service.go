package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type UserFields struct {
	Username  *string      `json:"username"`
	Email     *string      `json:"email"`
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Phone     *string      `json:"phone"`
	Role      *models.Role `json:"role"`
	Password  *string      `json:"password"`
	IsActive  *bool        `json:"is_active"`
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list := []models.User{}
	if err := s.DB.WithContext(ctx).Order("username").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return list, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, wrapFind(err, "user", id)
	}
	return &u, nil
}

func (s *UserService) Create(ctx context.Context, f UserFields) (*models.User, error) {
	u := models.User{Role: models.RoleStaff, IsActive: true}
	if f.Password == nil || *f.Password == "" {
		return nil, invalid("password is required")
	}
	if err := applyUserFields(&u, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if IsDuplicateKey(err) {
			return nil, fmt.Errorf("username %q already exists: %w", u.Username, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id uint, f UserFields) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUserFields(u, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(u).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return u, nil
}

// Delete removes a user; records that referenced them keep existing with
// the reference cleared.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detach := []struct {
			model  interface{}
			column string
		}{
			{&models.Task{}, "assigned_to_id"},
			{&models.Booking{}, "created_by_id"},
			{&models.Transaction{}, "recorded_by_id"},
			{&models.CalendarEvent{}, "created_by_id"},
		}
		for _, d := range detach {
			if err := tx.Model(d.model).Where(d.column+" = ?", id).Update(d.column, nil).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", d.column, err)
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete refresh tokens: %w", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, err)
		}
		return nil
	})
}

// Authenticate checks a username/password pair against the stored hash.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// EnsureAdmin creates the admin account when no user with that username exists.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if count > 0 {
		return nil
	}
	role := models.RoleAdmin
	if _, err := s.Create(ctx, UserFields{Username: &username, Password: &password, Role: &role}); err != nil {
		return err
	}
	log.Printf("👤 Default admin %q created", username)
	return nil
}

func applyUserFields(u *models.User, f UserFields) error {
	if f.Username != nil {
		u.Username = strings.TrimSpace(*f.Username)
	}
	if f.Email != nil {
		u.Email = strings.TrimSpace(*f.Email)
	}
	if f.FirstName != nil {
		u.FirstName = *f.FirstName
	}
	if f.LastName != nil {
		u.LastName = *f.LastName
	}
	if f.Phone != nil {
		u.Phone = *f.Phone
	}
	if f.Role != nil && *f.Role != "" {
		u.Role = *f.Role
	}
	if f.IsActive != nil {
		u.IsActive = *f.IsActive
	}
	if f.Password != nil && *f.Password != "" {
		if len(*f.Password) < 6 {
			return invalid("password must be at least 6 characters")
		}
		hashed, err := hashPassword(*f.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}

	if u.Username == "" {
		return invalid("username is required")
	}
	if !u.Role.Valid() {
		return invalid("role must be one of admin, staff, accountant")
	}
	return nil
}
