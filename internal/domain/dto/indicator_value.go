package dto

// IndicatorValueDto is the raw input of the add dialog.
type IndicatorValueDto struct {
	IndicatorID int64  `json:"indicator_id" validate:"required,gt=0"`
	Year        string `json:"year" validate:"required,number"`
	Value       string `json:"value" validate:"required,numeric"`
}

// UpdateIndicatorValueDto is the raw input of the edit dialog. The indicator cannot change.
type UpdateIndicatorValueDto struct {
	Year  string `json:"year" validate:"required,number"`
	Value string `json:"value" validate:"required,numeric"`
}
