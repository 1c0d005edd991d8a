package domain

// Claims is the identity claim set embedded in an access token. It is minted
// at login and round-trips through the token service untouched; CompanyName is
// present only on client tokens.
type Claims struct {
	SubjectID   string `json:"sub"`
	Username    string `json:"username"`
	Realm       Realm  `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
}
