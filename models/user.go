package models

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Email     *string   `gorm:"size:100;unique" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	IsActive  *bool     `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Session is the redis-backed state behind one opaque token.
type Session struct {
	UserId   int    `json:"user_id"`
	Username string `json:"username"`
}

type LoginInfo struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

/*
caches:
	Token:$token   -> Session
	Tokens:$username -> set of live tokens
*/

// Register creates a user plus their empty profile. The password is stored
// bcrypt-hashed.
func Register(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()
	var count int64

	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, utils.NewValidationError("email", "adresse courriel invalide")
	}

	err := db.WithContext(ctx).Model(&User{}).
		Where("username = ?", input.Username).Or("email = ?", input.Email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewValidationError("username", "nom d'utilisateur ou courriel déjà pris")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	input.Email = strings.ToLower(input.Email)

	user := User{
		Username: html.EscapeString(strings.TrimSpace(input.Username)),
		Email:    utils.NilIfEmpty(input.Email),
		Password: string(hashedPassword),
		IsActive: utils.NewTrue(),
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := Profile{UserId: user.ID}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

// Login verifies credentials and opens a redis session keyed by a fresh
// opaque token.
func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {
	db := config.GetDB()
	var result LoginInfo

	user := User{}
	err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	err = utils.ComparePassword(user.Password, password)
	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return nil, errors.New("invalid username or password")
	}
	if user.IsActive == nil || !*user.IsActive {
		return nil, errors.New("user is disabled")
	}

	var profile Profile
	if err := db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		result.Reputation = profile.Reputation
	}

	token := uuid.New()
	result.Token = token.String()
	result.Username = user.Username

	tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil {
		tokenLifespan = 24
	}

	// add new token to the user's tokens set
	if err := config.AddRedisSet("Tokens:"+user.Username, token.String()); err != nil {
		return nil, err
	}
	session := Session{UserId: user.ID, Username: user.Username}
	if err := config.SetRedisObject("Token:"+token.String(), &session, time.Duration(tokenLifespan)*time.Hour); err != nil {
		return nil, err
	}

	return &result, nil
}

// Logout destroys the current session.
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, errors.New("token is required")
	}
	err := config.RemoveRedisKey("Token:" + fmt.Sprint(token))
	if err != nil {
		return false, nil
	}
	// remove current token from the user's tokens set
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return false, errors.New("user not found")
	}
	if err := config.RemoveRedisSetMember("Tokens:"+username, token); err != nil {
		return false, err
	}
	return true, nil
}

// GetSession resolves an opaque token to its session, or reports a miss.
func GetSession(token string) (*Session, bool, error) {
	var session Session
	exists, err := config.GetRedisObject("Token:"+token, &session)
	if err != nil || !exists {
		return nil, false, err
	}
	return &session, true, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	db := config.GetDB()
	var result User
	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	result.PrepareGive()
	return &result, nil
}
