package repository

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"

	"gorm.io/gorm"
)

// Columns that must be unique among non-deleted users.
const (
	UserEmail          = "email_sf"
	UserName           = "username"
	UserPersonalNumber = "personal_number"
)

var userList = listSpec{
	table:       "ms_user",
	searchCols:  []string{"username", "dept", "department", "division", "email_sf", "role"},
	sortCols:    sortSet("username", "dept", "department", "division", "email_sf", "role", "personal_number"),
	defaultSort: "username",
}

type UserRepository interface {
	List(ctx context.Context, q dto.ListQuery) ([]model.User, int64, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*model.User, error)
	// ExistsActive reports whether a non-deleted user other than excludeID has
	// value in column, which must be one of the User* constants.
	ExistsActive(ctx context.Context, column, value string, excludeID int) (bool, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	SoftDelete(ctx context.Context, id int) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) List(ctx context.Context, q dto.ListQuery) ([]model.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.User{}).Where("is_deleted = ?", model.FlagOff)
	return paginate[model.User](base, userList, q)
}

func (r *userRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error
	return &u, err
}

func (r *userRepo) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("email_sf = ? AND is_deleted = ?", email, model.FlagOff).
		First(&u).Error
	return &u, err
}

func (r *userRepo) ExistsActive(ctx context.Context, column, value string, excludeID int) (bool, error) {
	switch column {
	case UserEmail, UserName, UserPersonalNumber:
	default:
		return false, gorm.ErrInvalidField
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where(column+" = ? AND is_deleted = ? AND user_id <> ?", value, model.FlagOff, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.User{}, "user_id", id, "is_deleted", model.FlagOn)
}

// setFlag writes one flag column and reports gorm.ErrRecordNotFound when no
// row matched.
func setFlag(ctx context.Context, db *gorm.DB, m any, pk string, id int, col string, value model.Flag) error {
	res := db.WithContext(ctx).Model(m).Where(pk+" = ?", id).Update(col, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
