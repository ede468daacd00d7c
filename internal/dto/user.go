package dto

type CreateUser struct {
	Username string
	Email    string
	Password string
	Avatar   *Upload
}

type UpdateUser struct {
	Username *string
	Email    *string
	Password *string
	Avatar   *Upload
}
