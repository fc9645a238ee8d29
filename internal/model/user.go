package model

// User: владелец кампаний на площадке.
type User struct {
	ID   string `gorm:"column:id;primaryKey;size:60" validate:"len=60,alphanum"`
	Name string `gorm:"column:name;size:64;not null;uniqueIndex" validate:"username"`
}

func (User) TableName() string { return "user" }

// Validate проверяет поля пользователя перед записью в БД.
func (u *User) Validate() error {
	return validate.Struct(u)
}
