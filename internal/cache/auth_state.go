package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/adnex-platform/partner-api/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// PartnerAuthState is the server-side snapshot used by the auth middleware
// to avoid a user+partner lookup on every request.
type PartnerAuthState struct {
	UserID       uint   `json:"user_id"`
	PartnerID    uint   `json:"partner_id"`
	Status       string `json:"status"`
	TokenVersion uint64 `json:"token_version"`
	UpdatedAt    int64  `json:"updated_at"`
}

func partnerAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:partner:%d", userID)
}

// BuildPartnerAuthState builds a snapshot from the user and partner rows.
func BuildPartnerAuthState(user *models.User, partner *models.Partner) *PartnerAuthState {
	if user == nil || partner == nil {
		return nil
	}
	return &PartnerAuthState{
		UserID:       user.ID,
		PartnerID:    partner.ID,
		Status:       user.Status,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
}

// GetPartnerAuthState reads a cached snapshot.
func GetPartnerAuthState(ctx context.Context, userID uint) (*PartnerAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state PartnerAuthState
	hit, err := GetJSON(ctx, partnerAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetPartnerAuthState stores a snapshot.
func SetPartnerAuthState(ctx context.Context, state *PartnerAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, partnerAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelPartnerAuthState drops a snapshot, used after login bumps state.
func DelPartnerAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, partnerAuthStateKey(userID))
}
