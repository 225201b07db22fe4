package models

import "time"

type FeedItem struct {
	ID uint `gorm:"primarykey"`

	AccountID  uint      `gorm:"column:account_id;not null;index"`          // 所属账号，创建后不可更改
	StatusText string    `gorm:"column:status_text;size:255;not null"`      // 状态内容
	CreatedOn  time.Time `gorm:"column:created_on;autoCreateTime;not null"` // 创建时间，只在创建时写入
}
