package domain

import "time"

type Experience struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description"`
}

type Education struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

type User struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Verified     bool   `gorm:"not null;default:false" json:"verified"`

	OTP          string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	ProfilePicture string       `json:"profilePicture"`
	BannerImg      string       `json:"bannerImg"`
	Headline       string       `gorm:"default:QuixJob" json:"headline"`
	Location       string       `gorm:"default:Earth" json:"location"`
	About          string       `json:"about"`
	Skills         []string     `gorm:"serializer:json;type:text" json:"skills"`
	Experience     []Experience `gorm:"serializer:json;type:text" json:"experience"`
	Education      []Education  `gorm:"serializer:json;type:text" json:"education"`
	Connections    []string     `gorm:"serializer:json;type:text" json:"connections"`
}

func (u *User) IsConnectedTo(userID string) bool {
	for _, id := range u.Connections {
		if id == userID {
			return true
		}
	}
	return false
}

// UserSummary is the public subset embedded in other resources.
type UserSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Headline       string `json:"headline"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Headline:       u.Headline,
	}
}
