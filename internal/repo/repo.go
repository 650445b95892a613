package repo

import "gorm.io/gorm"

type GormRepo struct {
	DB *gorm.DB
}

// WithTx returns a copy of the repo bound to an open transaction so services
// can run multi-table units of work through the same query layer.
func (r *GormRepo) WithTx(tx *gorm.DB) *GormRepo {
	return &GormRepo{DB: tx}
}
