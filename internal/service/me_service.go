package service

import (
	"context"
	"fmt"
	"time"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"
)

// MeResponse 当前调用方信息
type MeResponse struct {
	OwnerID               string `json:"owner_id"`
	IsSuperuser           bool   `json:"is_superuser"`
	HasActiveSubscription bool   `json:"has_active_subscription"`
}

// MeService /me
type MeService struct {
	subscriptions repository.SubscriptionsRepository
	now           func() time.Time
}

func NewMeService(subscriptions repository.SubscriptionsRepository, now func() time.Time) *MeService {
	if now == nil {
		now = time.Now
	}
	return &MeService{subscriptions: subscriptions, now: now}
}

func (s *MeService) Me(ctx context.Context, caller domain.Caller) (*MeResponse, error) {
	ok, err := s.subscriptions.HasActiveSubscription(ctx, caller.OwnerID, domain.DateOf(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	return &MeResponse{
		OwnerID:               caller.OwnerID,
		IsSuperuser:           caller.Privileged,
		HasActiveSubscription: ok,
	}, nil
}
