package model

import "gorm.io/plugin/soft_delete"

// CalcEntry is one persisted calculation outcome. ParamsHash keys the
// resolved token sequence, so identical requests share a row and act as
// a result cache.
type CalcEntry struct {
	ID              int64                 `json:"id"`
	ParamsHash      string                `json:"params_hash" gorm:"index:idx_params_hash,unique"`
	Input           string                `json:"input" gorm:"index:idx_input"`
	Infix           string                `json:"infix"`
	Value           float64               `json:"value"`
	ErrorCode       int                   `json:"error_code"`
	ErrorMessage    string                `json:"error_message"`
	CreatedAt       int64                 `json:"created_at"`
	LastAccess      int64                 `json:"last_access"`
	ExpiredDuration int64                 `json:"expired_duration"`
	Deleted         soft_delete.DeletedAt `json:"-" gorm:"softDelete:flag;default:0"`
}

func (CalcEntry) TableName() string {
	return "calc_entry"
}
