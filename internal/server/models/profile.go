package models

// ProfileFields are the birth profile attributes a user fills in during
// onboarding. All values are kept as free text.
type ProfileFields struct {
	DateOfBirth   string `json:"dob"`
	TimeOfBirth   string `json:"tob"`
	PlaceOfBirth  string `json:"place"`
	FavoriteColor string `json:"fav_color"`
	Rashi         string `json:"rashi"`
	Language      string `json:"language"`
	Gender        string `json:"gender"`
}

// Profile is a row of the user_profiles table. There is at most one profile
// per user.
type Profile struct {
	UserID int64 `json:"user_id"`
	ProfileFields
}
