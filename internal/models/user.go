package models

// MaxBioLength is the upper bound on profile bios, counted in
// characters. Longer bios are truncated at write time.
const MaxBioLength = 300

// Profile holds the public-facing part of a user record.
type Profile struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	JoinedAt    string `json:"joined_at"`
}

// User represents a registered account. The username doubles as the
// key in the persisted user map, so it carries no json tag of its own;
// the password hash is serialized to the data file only and must never
// appear in an API response.
type User struct {
	Username     string  `json:"-"`
	PasswordHash string  `json:"password"`
	Profile      Profile `json:"profile"`
}
