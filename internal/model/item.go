package model

import "time"

// Item: кампания (товар), на которую собираются деньги.
// Порядок полей совпадает с порядком проверки: первая ошибка валидации определяет код ответа.
type Item struct {
	ItemID string `gorm:"column:item_id;primaryKey;size:60" validate:"len=60,alphanum"`
	UserID string `gorm:"column:user_id;size:60;not null;index" validate:"len=60,alphanum"`

	// Связи: владелец и описание; внешние ключи с каскадным удалением
	User     *User         `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	Contents *ItemContents `gorm:"foreignKey:ItemID;references:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`

	Name            string    `gorm:"column:name;size:128;not null;uniqueIndex" validate:"required,max=128"`
	EndDate         time.Time `gorm:"column:end_date;not null" validate:"required"`
	TargetMoney     int64     `gorm:"column:target_money;not null" validate:"gt=0"`
	FundingUnit     int64     `gorm:"column:funding_unit;not null" validate:"gt=0"`
	ParticipantSize int64     `gorm:"column:participant_size;not null;default:0" validate:"gte=0"`
	CurrentMoney    int64     `gorm:"column:current_money;not null;default:0" validate:"gte=0"`

	CreateDate time.Time `gorm:"column:create_date;autoCreateTime;not null" validate:"-"`
}

func (Item) TableName() string { return "item" }

// Validate проверяет поля кампании перед записью в БД.
func (it *Item) Validate() error {
	return validate.Struct(it)
}

// FundingGage: процент достижения цели (current_money / target_money * 100).
func (it *Item) FundingGage() float64 {
	return Percentage(it.CurrentMoney, it.TargetMoney)
}

// Percentage считает процент сбора; при нулевой цели возвращает 0.
func Percentage(current, target int64) float64 {
	if target == 0 {
		return 0
	}
	return float64(current) / float64(target) * 100
}

// ItemContents: описание кампании, хранится отдельно от часто сортируемой таблицы item.
type ItemContents struct {
	ItemID  string `gorm:"column:item_id;primaryKey;size:60" validate:"len=60,alphanum"`
	Summary string `gorm:"column:summary;size:2048;not null;default:''" validate:"max=2048"`
}

func (ItemContents) TableName() string { return "itemContents" }

// Validate проверяет описание кампании.
func (c *ItemContents) Validate() error {
	return validate.Struct(c)
}
