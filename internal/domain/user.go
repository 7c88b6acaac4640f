package domain

// User identifies a member of the online service, such as the mapper of a set.
// The zero ID means the id was never provided.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
