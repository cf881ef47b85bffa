package admin

type Repository interface {
	// CreateAccount creates a new admin with the provided username and
	// password. Returns db.ErrorConflict if the username already exists.
	CreateAccount(username, password string) (string, error)
	// LoginAccount checks that the provided username and password match a
	// record in the database. Returns db.ErrorInvalidRequest if the username
	// or password does not match any record.
	LoginAccount(username, password string) (string, error)
}
