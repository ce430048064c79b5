package postgres

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Accounts *AccountRepository
}

// NewRepositories wires all repositories backed by the provided pool or transaction.
func NewRepositories(exec pgExecutor) *Repositories {
	return &Repositories{
		Accounts: NewAccountRepository(exec),
	}
}
