package models

// Address is a postal address on a user profile.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// UserProfile represents a registered banking customer.
type UserProfile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Avatar       string   `json:"avatar"`
	MemberSince  string   `json:"memberSince"`
	Tier         string   `json:"tier"`
	Address      Address  `json:"address"`
	TotalBalance float64  `json:"totalBalance"`
	ValidOTPs    []string `json:"validOtps"`
}

// PublicUser is the API view of a profile. It never carries passcodes.
type PublicUser struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Avatar       string  `json:"avatar"`
	MemberSince  string  `json:"memberSince"`
	Tier         string  `json:"tier"`
	Address      Address `json:"address"`
	TotalBalance float64 `json:"totalBalance"`
}

// Public strips the passcode list from the profile.
func (u UserProfile) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		Avatar:       u.Avatar,
		MemberSince:  u.MemberSince,
		Tier:         u.Tier,
		Address:      u.Address,
		TotalBalance: u.TotalBalance,
	}
}
