package types

// Success responses wrap their payload in "result"; failures carry a
// "detail" message. The structs below are the payload shapes.

type UserResponse struct {
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type CompanyResponse struct {
	CompanyID          uint    `json:"company_id"`
	CompanyName        string  `json:"company_name"`
	CompanyDescription *string `json:"company_description"`
	CompanyOwnerID     uint    `json:"company_owner_id"`
}

type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type InviteResponse struct {
	InviteID      uint   `json:"invite_id"`
	FromCompanyID uint   `json:"from_company_id"`
	ToUserID      uint   `json:"to_user_id"`
	InviteMessage string `json:"invite_message"`
	Status        string `json:"status"`
}

type RequestResponse struct {
	RequestID      uint   `json:"request_id"`
	FromUserID     uint   `json:"from_user_id"`
	ToCompanyID    uint   `json:"to_company_id"`
	RequestMessage string `json:"request_message"`
	Status         string `json:"status"`
}
