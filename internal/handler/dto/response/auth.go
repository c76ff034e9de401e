package response

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Email       string `json:"email"`
}
