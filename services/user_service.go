package services

import (
	"errors"
	"time"

	"travelex-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserService is the gorm-backed UserStore.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser verifies the stored bcrypt hash and, only on success,
// stamps last_login_at. A bad password yields ErrNotFound just like an
// unknown username.
func (s *UserService) AuthenticateUser(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	if err := s.UpdateUserLastLogin(user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) CreateUser(input *UpsertUser) (*models.User, error) {
	user := models.User{
		ID:              input.ID,
		Username:        input.Username,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		ProfileImageURL: input.ProfileImageURL,
		Role:            input.Role,
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateUser(id string, input *UpsertUser) (*models.User, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if input.Username != "" {
		updates["username"] = input.Username
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.ProfileImageURL != "" {
		updates["profile_image_url"] = input.ProfileImageURL
	}
	if input.Role != "" {
		updates["role"] = input.Role
	}

	res := s.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(id)
}

// upsertAssignmentColumns lists the columns a conflicting row should take
// from the input. Empty fields stay untouched, so an upsert without a
// password never clobbers the stored hash.
func upsertAssignmentColumns(input *UpsertUser) []string {
	cols := []string{"updated_at"}
	if input.Username != "" {
		cols = append(cols, "username")
	}
	if input.Password != "" {
		cols = append(cols, "password")
	}
	if input.Email != "" {
		cols = append(cols, "email")
	}
	if input.FirstName != "" {
		cols = append(cols, "first_name")
	}
	if input.LastName != "" {
		cols = append(cols, "last_name")
	}
	if input.ProfileImageURL != "" {
		cols = append(cols, "profile_image_url")
	}
	if input.Role != "" {
		cols = append(cols, "role")
	}
	return cols
}

// UpsertUser inserts or, when the id already exists, updates the provided
// fields in place.
func (s *UserService) UpsertUser(input *UpsertUser) (*models.User, error) {
	user := models.User{
		ID:              input.ID,
		Username:        input.Username,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		ProfileImageURL: input.ProfileImageURL,
		Role:            input.Role,
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(upsertAssignmentColumns(input)),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}
	return s.GetUser(user.ID)
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) UpdateUserLastLogin(id string) error {
	return s.DB.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

func (s *UserService) DeleteUser(id string) error {
	return s.DB.Delete(&models.User{}, "id = ?", id).Error
}
