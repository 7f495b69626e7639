package models

import "time"

// Rating is a single user's 1-5 score for a store.
// The (UserID, StoreID) pair is unique.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Value     int       `json:"rating" gorm:"column:rating;not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:1"`
	StoreID   uint      `json:"storeId" gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:2;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Store     *Store    `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerRatingEntry is one rating shown on an owner's dashboard.
type OwnerRatingEntry struct {
	UserID    uint   `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	StoreID   uint   `json:"storeId"`
	StoreName string `json:"storeName"`
	Rating    int    `json:"rating"`
}

// DashboardStats holds platform-wide entity counts.
type DashboardStats struct {
	Users   int64 `json:"userCount"`
	Stores  int64 `json:"storeCount"`
	Ratings int64 `json:"ratingCount"`
}
