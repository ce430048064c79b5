package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

const (
	accountsTable = "feedformly.accounts"
	messagesTable = "feedformly.messages"

	accountsUsernameConstraint = "accounts_username_key"
	accountsEmailConstraint    = "accounts_email_key"
)

var accountColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"verify_code",
	"verify_code_expiry",
	"is_verified",
	"is_accepting_messages",
	"created_at",
}

// appendMessageSQL inserts into the inbox only while the gate is open and reports
// how many accounts matched and how many rows were written, in one statement.
const appendMessageSQL = `
WITH target AS (
	SELECT id, is_accepting_messages FROM feedformly.accounts WHERE username = $1
), inserted AS (
	INSERT INTO feedformly.messages (id, account_id, content, created_at)
	SELECT $2::uuid, target.id, $3::text, $4::timestamptz
	FROM target
	WHERE target.is_accepting_messages
	RETURNING id
)
SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM inserted)`

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	repo := &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *AccountRepository) WithTx(tx pgx.Tx) *AccountRepository {
	if tx == nil {
		return r
	}
	return &AccountRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID,
			account.Username,
			account.Email,
			account.PasswordHash,
			nullableString(account.VerifyCode),
			nullableTime(account.VerifyCodeExpiry),
			account.IsVerified,
			account.IsAcceptingMessages,
			account.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves an account by its exact username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// GetByEmail retrieves an account by its email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByIdentifier retrieves an account by username or email.
func (r *AccountRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Or{
		squirrel.Eq{"username": identifier},
		squirrel.Eq{"email": identifier},
	})
}

func (r *AccountRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	var (
		account    domain.Account
		verifyCode sql.NullString
		expiry     *time.Time
	)

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&verifyCode,
		&expiry,
		&account.IsVerified,
		&account.IsAcceptingMessages,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	if verifyCode.Valid {
		account.VerifyCode = verifyCode.String
	}
	if expiry != nil {
		account.VerifyCodeExpiry = expiry.UTC()
	}

	return &account, nil
}

// UpdatePendingRegistration rewrites credentials of an account that is still unverified.
func (r *AccountRepository) UpdatePendingRegistration(ctx context.Context, id string, update port.PendingRegistration) error {
	stmt, args, err := r.builder.Update(accountsTable).
		Set("username", update.Username).
		Set("password_hash", update.PasswordHash).
		Set("verify_code", update.VerifyCode).
		Set("verify_code_expiry", update.VerifyCodeExpiry).
		Where(squirrel.Eq{"id": id, "is_verified": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update pending registration sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update pending registration: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// MarkVerified flips the verification flag.
func (r *AccountRepository) MarkVerified(ctx context.Context, id string) error {
	return r.updateFlag(ctx, id, "is_verified", true)
}

// SetAcceptingMessages toggles the acceptance gate.
func (r *AccountRepository) SetAcceptingMessages(ctx context.Context, id string, accepting bool) error {
	return r.updateFlag(ctx, id, "is_accepting_messages", accepting)
}

func (r *AccountRepository) updateFlag(ctx context.Context, id, column string, value bool) error {
	stmt, args, err := r.builder.Update(accountsTable).
		Set(column, value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s sql: %w", column, err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// AppendMessage stores a message for username if the account accepts messages.
func (r *AccountRepository) AppendMessage(ctx context.Context, username string, message domain.Message) error {
	var matched, inserted int64
	if err := r.exec.QueryRow(ctx, appendMessageSQL,
		username,
		message.ID,
		message.Content,
		message.CreatedAt,
	).Scan(&matched, &inserted); err != nil {
		return fmt.Errorf("append message: %w", err)
	}

	switch {
	case matched == 0:
		return repository.ErrNotFound
	case inserted == 0:
		return repository.ErrNotAccepting
	default:
		return nil
	}
}

// ListMessages returns the inbox of accountID in insertion order.
func (r *AccountRepository) ListMessages(ctx context.Context, accountID string) ([]domain.Message, error) {
	stmt, args, err := r.builder.
		Select("id", "content", "created_at").
		From(messagesTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list messages sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// DeleteMessage removes messageID from accountID's inbox.
func (r *AccountRepository) DeleteMessage(ctx context.Context, accountID, messageID string) error {
	stmt, args, err := r.builder.Delete(messagesTable).
		Where(squirrel.Eq{"id": messageID, "account_id": accountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete message sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value
}

var _ port.AccountRepository = (*AccountRepository)(nil)
