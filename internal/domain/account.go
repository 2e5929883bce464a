package domain

import "time"

type Account struct {
	ID           string    `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" bson:"username" gorm:"size:140"`
	Email        string    `json:"email" bson:"email" gorm:"size:140;uniqueIndex;not null"`
	Role         string    `json:"usertype" bson:"usertype" gorm:"size:40"`
	PasswordHash string    `json:"-" bson:"password" gorm:"column:password;size:100;not null"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
}
