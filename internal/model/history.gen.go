package model

import "github.com/haierkeys/markdown-format-service/pkg/timex"

const TableNameHistory = "history"

// History mapped from table <history>
type History struct {
	ID            int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	RawText       string     `gorm:"column:raw_text;type:text;not null" json:"rawText" form:"rawText"`
	FormattedHTML string     `gorm:"column:formatted_html;type:text;not null" json:"formattedHtml" form:"formattedHtml"`
	CreatedAt     timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false;index:idx_history_created_at" json:"createdAt" form:"createdAt"`
}

// TableName History's table name
func (*History) TableName() string {
	return TableNameHistory
}
