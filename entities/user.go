package entities

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:150;uniqueIndex" json:"username"`
	Email     string `gorm:"size:254;uniqueIndex" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Password  string `gorm:"size:128" json:"-"`
	AvatarURL string `json:"avatar,omitempty"`

	Timestamp
}

// FullName is the display name used in shopping list reports.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

type Follow struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"uniqueIndex:idx_follow_user_following" json:"user_id"`
	FollowingID uint `gorm:"uniqueIndex:idx_follow_user_following" json:"following_id"`

	User      *User `gorm:"foreignKey:UserID"`
	Following *User `gorm:"foreignKey:FollowingID"`
	Timestamp
}
