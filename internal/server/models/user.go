package models

// User is a registered account. Password always holds the hash produced by
// the configured hasher; it is left empty when a query does not select it.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	Department string `json:"department"`
}
