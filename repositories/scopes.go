package repositories

import (
	"recipe-share/models"

	"gorm.io/gorm"
)

// Visible keeps public rows of table plus the rows owned by uid.
// An anonymous caller (nil uid) only sees public rows.
func Visible(table string, uid *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if uid == nil {
			return db.Where(table+".private = ?", false)
		}
		return db.Where("("+table+".private = ? OR "+table+".uid = ?)", false, *uid)
	}
}

// OwnedBy keeps rows of table owned by uid, whatever their visibility.
func OwnedBy(table string, uid uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".uid = ?", uid)
	}
}

// Paginate applies page/limit from params.
func Paginate(params models.ListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.Limit)
	}
}
