package models

// LoginParam is the param of the Login command
type LoginParam struct {
	User LoginUser `json:"User"`
}

type LoginUser struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginValue captures the token returned by Login
type LoginValue struct {
	Token struct {
		LeaseTime int    `json:"leaseTime"`
		Name      string `json:"name"`
	} `json:"Token"`
}
