package sqlite

import (
	"time"

	"gorm.io/gorm"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

type accountRecord struct {
	ID                  string `gorm:"primaryKey;type:text"`
	Username            string `gorm:"uniqueIndex:accounts_username_key;not null"`
	Email               string `gorm:"uniqueIndex:accounts_email_key;not null"`
	PasswordHash        string `gorm:"not null"`
	VerifyCode          *string
	VerifyCodeExpiry    *time.Time
	IsVerified          bool `gorm:"not null"`
	IsAcceptingMessages bool `gorm:"not null"`
	CreatedAt           time.Time
	Messages            []messageRecord `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (accountRecord) TableName() string { return "accounts" }

// messageRecord keeps an autoincrement seq so insertion order survives equal timestamps.
type messageRecord struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"uniqueIndex;type:text;not null"`
	AccountID string    `gorm:"index;type:text;not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (messageRecord) TableName() string { return "messages" }

// Migrate creates or updates the tables used by AccountRepository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&accountRecord{}, &messageRecord{})
}

func toRecord(account domain.Account) accountRecord {
	rec := accountRecord{
		ID:                  account.ID,
		Username:            account.Username,
		Email:               account.Email,
		PasswordHash:        account.PasswordHash,
		IsVerified:          account.IsVerified,
		IsAcceptingMessages: account.IsAcceptingMessages,
		CreatedAt:           account.CreatedAt,
	}
	if account.VerifyCode != "" {
		code := account.VerifyCode
		rec.VerifyCode = &code
	}
	if !account.VerifyCodeExpiry.IsZero() {
		expiry := account.VerifyCodeExpiry
		rec.VerifyCodeExpiry = &expiry
	}
	return rec
}

func (r accountRecord) toDomain() *domain.Account {
	account := &domain.Account{
		ID:                  r.ID,
		Username:            r.Username,
		Email:               r.Email,
		PasswordHash:        r.PasswordHash,
		IsVerified:          r.IsVerified,
		IsAcceptingMessages: r.IsAcceptingMessages,
		CreatedAt:           r.CreatedAt.UTC(),
	}
	if r.VerifyCode != nil {
		account.VerifyCode = *r.VerifyCode
	}
	if r.VerifyCodeExpiry != nil {
		account.VerifyCodeExpiry = r.VerifyCodeExpiry.UTC()
	}
	return account
}
