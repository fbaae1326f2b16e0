package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisLockSuite struct {
	suite.Suite
	ctx    context.Context
	mr     *miniredis.Miniredis
	client *redis.Client
	lock   *Redis
}

func TestRedisLockSuite(t *testing.T) {
	suite.Run(t, new(RedisLockSuite))
}

func (s *RedisLockSuite) SetupTest() {
	s.ctx = context.Background()
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.T().Cleanup(func() { _ = s.client.Close() })
	s.lock = NewRedis(s.client, "", time.Minute)
}

func (s *RedisLockSuite) TestAcquireRelease() {
	lease, err := s.lock.Acquire(s.ctx)
	s.Require().NoError(err)
	s.True(s.mr.Exists(DefaultKey))
	s.Equal(time.Minute, s.mr.TTL(DefaultKey))

	_, err = s.lock.Acquire(s.ctx)
	s.ErrorIs(err, ErrHeld)

	s.Require().NoError(lease.Release(s.ctx))
	s.False(s.mr.Exists(DefaultKey))

	again, err := s.lock.Acquire(s.ctx)
	s.Require().NoError(err)
	s.NoError(again.Release(s.ctx))
}

func (s *RedisLockSuite) TestExpiredLeaseDoesNotReleaseNewHolder() {
	stale, err := s.lock.Acquire(s.ctx)
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)
	fresh, err := s.lock.Acquire(s.ctx)
	s.Require().NoError(err)

	s.ErrorIs(stale.Release(s.ctx), ErrLost)
	s.True(s.mr.Exists(DefaultKey), "stale release must not free the new holder's lock")
	s.NoError(fresh.Release(s.ctx))
}

func (s *RedisLockSuite) TestKeysAreIndependent() {
	other := NewRedis(s.client, "hmis:other", time.Minute)
	a, err := s.lock.Acquire(s.ctx)
	s.Require().NoError(err)
	b, err := other.Acquire(s.ctx)
	s.Require().NoError(err)
	s.NoError(a.Release(s.ctx))
	s.NoError(b.Release(s.ctx))
}

func TestNoop(t *testing.T) {
	var l Lock = Noop{}
	lease, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := lease.Release(context.Background()); err != nil {
		t.Fatal(err)
	}
}
