package model

// AccessToken is the object embedded in the jwt access token issued by the
// identity service.
type AccessToken struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}
