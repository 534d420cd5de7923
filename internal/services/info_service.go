// filepath: internal/services/info_service.go
package services

import (
	"time"

	"mediatheque/internal/models"
)

// Compile-time check to ensure the interface is implemented.
var _ InfoService = (*infoService)(nil)

type infoService struct {
	info models.Info
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time) *infoService {
	return &infoService{
		info: models.Info{
			ServiceName: "mediatheque",
			Version:     version,
			UptimeSince: startTime,
		},
	}
}

// GetInfo returns general information about the service.
func (s *infoService) GetInfo() models.Info {
	return s.info
}
