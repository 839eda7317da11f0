package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:v1:"

// OTPStore keeps one code per user under otp:v1:<user id>. The key expires
// together with the code, so stale codes disappear on their own.
type OTPStore struct {
	client *goredis.Client
	now    func() time.Time
}

func NewOTPStore(client *goredis.Client) *OTPStore {
	return &OTPStore{client: client, now: time.Now}
}

func otpKey(userID string) string {
	return otpKeyPrefix + userID
}

func (s *OTPStore) Put(ctx context.Context, otp *domain.OTP) error {
	ttl := otp.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("store otp: already expired")
	}

	payload, err := json.Marshal(otp)
	if err != nil {
		return fmt.Errorf("encode otp: %w", err)
	}

	if err := s.client.Set(ctx, otpKey(otp.UserID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, userID string) (*domain.OTP, error) {
	raw, err := s.client.Get(ctx, otpKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, fmt.Errorf("load otp: %w", err)
	}

	var otp domain.OTP
	if err := json.Unmarshal(raw, &otp); err != nil {
		return nil, fmt.Errorf("decode otp: %w", err)
	}
	return &otp, nil
}

func (s *OTPStore) Consume(ctx context.Context, userID string) error {
	n, err := s.client.Del(ctx, otpKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if n == 0 {
		return domain.ErrInvalidOTP
	}
	return nil
}
