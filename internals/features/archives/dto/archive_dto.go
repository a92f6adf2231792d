package dto

import (
	"time"

	"github.com/google/uuid"
)

type RotateDateRequest struct {
	Date   string     `json:"date" validate:"required"`
	UnitID *uuid.UUID `json:"unit_id"` // SUPER_ADMIN only; others use their own unit
}

type RotateAllRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,dive,required"`
}

type PartialFailureResponse struct {
	Operation    string `json:"operation"`
	Copied       int    `json:"copied"`
	Location     string `json:"location"`
	RecoveryHint string `json:"recovery_hint"`
}

type BackupResponse struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	DownloadURL  string    `json:"download_url,omitempty"`
}
