package models

// UserProfile represents the signed-in user
type UserProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// AuthorProfile is the public view of any user, looked up by id
type AuthorProfile struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// SignupInput represents the request body for sign up
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninInput represents the request body for sign in
type SigninInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by sign up and sign in
type AuthResponse struct {
	JWT string `json:"jwt"`
}

// UpdateBioInput represents the request body for a bio update
type UpdateBioInput struct {
	Bio string `json:"bio"`
}
