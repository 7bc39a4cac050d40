package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	policyKeyPrefix = "deletion:policy:"
	// policyAbsent marks a cached "no policy configured" answer so the
	// common case does not hit the database on every deletion request.
	policyAbsent = "absent"
)

type cachedPolicy struct {
	RequireApproval bool `json:"require_approval"`
}

// RedisPolicyCache is a read-through cache in front of the deletion policy
// repository. Redis failures degrade to direct repository reads; the cache
// is never the source of truth.
type RedisPolicyCache struct {
	client     *redis.Client
	repository deletion.PolicyRepository
	ttl        time.Duration
	logger     *zap.Logger
}

// NewRedisPolicyCache creates a read-through policy cache
func NewRedisPolicyCache(client *redis.Client, repository deletion.PolicyRepository, ttl time.Duration, logger *zap.Logger) *RedisPolicyCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisPolicyCache{
		client:     client,
		repository: repository,
		ttl:        ttl,
		logger:     logger,
	}
}

func policyKey(companyID uuid.UUID, recordType deletion.RecordType) string {
	return policyKeyPrefix + companyID.String() + ":" + recordType.String()
}

// PolicyFor resolves the effective deletion policy, serving from cache when
// possible and caching both hits and absences.
func (c *RedisPolicyCache) PolicyFor(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType) (*deletion.Policy, error) {
	key := policyKey(companyID, recordType)

	value, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if value == policyAbsent {
			return nil, nil
		}
		var cached cachedPolicy
		if jsonErr := json.Unmarshal([]byte(value), &cached); jsonErr == nil {
			policy := &deletion.Policy{
				RecordType:      recordType,
				RequireApproval: cached.RequireApproval,
			}
			policy.CompanyID = companyID
			return policy, nil
		}
		// Unreadable entry, fall through to the repository
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Policy cache read failed, falling back to repository",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	policy, err := c.repository.FindForCompany(ctx, companyID, recordType)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, policy)
	return policy, nil
}

// Invalidate drops the cached policy after an update
func (c *RedisPolicyCache) Invalidate(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType) error {
	return c.client.Del(ctx, policyKey(companyID, recordType)).Err()
}

func (c *RedisPolicyCache) store(ctx context.Context, key string, policy *deletion.Policy) {
	value := policyAbsent
	if policy != nil {
		encoded, err := json.Marshal(cachedPolicy{RequireApproval: policy.RequireApproval})
		if err != nil {
			return
		}
		value = string(encoded)
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("Policy cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Ensure RedisPolicyCache implements the provider contract
var _ deletion.PolicyProvider = (*RedisPolicyCache)(nil)
