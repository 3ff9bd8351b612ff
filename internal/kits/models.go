package kits

import "time"

// Kit is one FAA-registered kit aircraft, one row per registration.
// The registration code (n_number) is the natural key; every other column
// may be absent in the source extract, so they stay nullable here instead
// of collapsing to zero values.
type Kit struct {
	NNumber        string     `gorm:"column:n_number;primaryKey" json:"n_number"`
	SerialNumber   *string    `gorm:"column:serial_number" json:"serial_number"`
	MfrMdlCode     *string    `gorm:"column:mfr_mdl_code" json:"mfr_mdl_code"`
	Mfr            *string    `gorm:"column:mfr;index" json:"mfr"`
	Model          *string    `gorm:"column:model;index" json:"model"`
	AcftCat        *string    `gorm:"column:acftcat;index" json:"acftcat"`
	NoSeats        *int       `gorm:"column:no_seats" json:"no_seats"`
	AcWeight       *string    `gorm:"column:ac_weight" json:"ac_weight"`
	EngCat         *string    `gorm:"column:engcat;index" json:"engcat"`
	SurfCat        *string    `gorm:"column:surfcat" json:"surfcat"`
	NoEng          *int       `gorm:"column:no_eng" json:"no_eng"`
	City           *string    `gorm:"column:city" json:"city"`
	State          *string    `gorm:"column:state;index" json:"state"`
	ZipMin         *string    `gorm:"column:zip_min" json:"zip_min"`
	KitMfg         *string    `gorm:"column:kitmfg;index" json:"kitmfg"`
	KitMdl         *string    `gorm:"column:kitmdl" json:"kitmdl"`
	ModeSCode      *string    `gorm:"column:mode_s_code" json:"mode_s_code"`
	YearMfr        *int       `gorm:"column:year_mfr;index" json:"year_mfr"`
	LastActionDate *time.Time `gorm:"column:last_action_date" json:"last_action_date"`
	CertIssueDate  *time.Time `gorm:"column:cert_issue_date" json:"cert_issue_date"`
	AirWorthDate   *time.Time `gorm:"column:air_worth_date" json:"air_worth_date"`
}

func (Kit) TableName() string {
	return "kits"
}
