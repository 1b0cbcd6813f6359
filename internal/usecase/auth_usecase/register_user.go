package auth

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNameRequired       = errors.New("name required")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	if in.Name == "" {
		return out, ErrNameRequired
	}

	// emailの形式チェック
	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// passwordの長さチェック（最小8文字）
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	// 自己登録できるのはbuyerとbusiness_ownerだけ。
	// admin/super_adminはシードで作る。
	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleBuyer
	}
	if role != model.RoleBuyer && role != model.RoleBusinessOwner {
		return out, ErrInvalidRole
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	// Userを作って保存。email重複はDBのunique indexで検出する
	now := u.clock.Now()
	user := model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	out.User = created
	return out, nil
}

func isValidEmailFormat(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
