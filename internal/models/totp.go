package models

// TOTPSetupResponse carries the provisioning secret and QR code for an
// authenticator app enrollment.
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type TOTPStatusResponse struct {
	Enabled   bool    `json:"enabled"`
	EnabledAt *string `json:"enabled_at"`
}

type TOTPCodeRequest struct {
	Code string `json:"code"`
}

type TOTPDisableRequest struct {
	Password string `json:"password"`
	Code     string `json:"code"`
}
