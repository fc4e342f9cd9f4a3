package domain

// Profile is the signed-in user's account data.
type Profile struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	ProfileImage string `json:"profile_image"`
}

// Referral is a user recruited through the current user's referral code.
type Referral struct {
	Username   string `json:"username"`
	Referred   string `json:"referred"`
	IsVerified bool   `json:"is_verified"`
	Level      int    `json:"level"`
	Image      string `json:"image"`
	CreatedAt  string `json:"created_at"`
}

// ReferralSummary is the payload of /accounts/referrals/.
type ReferralSummary struct {
	ReferralCode string     `json:"referral_code"`
	Referrals    []Referral `json:"referrals"`
}

// Tokens is the credential pair returned by login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
