package model

import "time"

// User is a job-seeker account. The profile sections (skills, languages,
// experience, projects, certifications) are embedded slices rather than
// separate collections — the store persists whole documents, so there is
// nothing to join when reading a profile.
//
// WHY PasswordHash AND NOT Password?
// We never persist the plaintext. The hash is bcrypt output, which embeds
// its own salt and cost, so a single string column is all we need. The
// `json:"-"` tag keeps it out of every API response automatically — one
// less thing each handler has to remember to strip.
type User struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	PasswordHash   string           `json:"-"`
	Location       string           `json:"location"`
	Phone          string           `json:"phone"`
	Bio            string           `json:"bio"`
	Skills         []string         `json:"skills"`
	Languages      []Language       `json:"languages"`
	Experience     []WorkExperience `json:"experience"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Language is a spoken language with a self-assessed proficiency level.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// WorkExperience is one entry in a user's employment history.
// EndDate is meaningless while CurrentlyWorking is true.
type WorkExperience struct {
	Company          string `json:"company"`
	Position         string `json:"position"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	Description      string `json:"description"`
}

// Project is a portfolio entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Certification is a course or credential with an optional verification link.
type Certification struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Link     string `json:"link"`
}

// HasProfileContent reports whether the profile carries enough substance
// (skills, experience, or projects) to drive job recommendations.
func (u *User) HasProfileContent() bool {
	return len(u.Skills) > 0 || len(u.Experience) > 0 || len(u.Projects) > 0
}
