/*
 * @module service/distributed_lock/lock_executor_test
 * @description 带锁执行器单元测试，使用桩锁验证获取、跳过和释放语义
 * @architecture 测试层
 * @documentReference ai_docs/audit_log_design.md
 * @stateFlow 桩锁 -> 执行器调用 -> 断言执行与释放
 * @rules 锁被其他实例持有时跳过执行且不视为错误
 * @dependencies github.com/stretchr/testify/assert
 * @refs service/distributed_lock/redis_lock.go
 */

package distributed_lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLock 测试桩锁
type stubLock struct {
	acquired  bool
	lockErr   error
	unlocked  bool
	lockedKey string
}

func (s *stubLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.lockedKey = key
	return s.acquired, s.lockErr
}

func (s *stubLock) Unlock(ctx context.Context, key string) error {
	s.unlocked = true
	return nil
}

func TestLockExecutor_ExecutesWhenLockAcquired(t *testing.T) {
	lock := &stubLock{acquired: true}
	executor := NewLockExecutor(lock)

	executed := false
	err := executor.ExecuteWithLock(context.Background(), "cleanup", time.Minute, func() error {
		executed = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, executed)
	assert.True(t, lock.unlocked)
	assert.Equal(t, "cleanup", lock.lockedKey)
}

func TestLockExecutor_SkipsWhenLockHeld(t *testing.T) {
	lock := &stubLock{acquired: false}
	executor := NewLockExecutor(lock)

	executed := false
	err := executor.ExecuteWithLock(context.Background(), "cleanup", time.Minute, func() error {
		executed = true
		return nil
	})

	// 锁被其他实例持有不是错误，任务被跳过
	require.NoError(t, err)
	assert.False(t, executed)
	assert.False(t, lock.unlocked)
}

func TestLockExecutor_LockErrorPropagated(t *testing.T) {
	lock := &stubLock{lockErr: errors.New("redis不可达")}
	executor := NewLockExecutor(lock)

	err := executor.ExecuteWithLock(context.Background(), "cleanup", time.Minute, func() error {
		return nil
	})

	assert.Error(t, err)
}

func TestLockExecutor_TaskErrorAndUnlock(t *testing.T) {
	lock := &stubLock{acquired: true}
	executor := NewLockExecutor(lock)

	taskErr := errors.New("任务失败")
	err := executor.ExecuteWithLock(context.Background(), "cleanup", time.Minute, func() error {
		return taskErr
	})

	assert.ErrorIs(t, err, taskErr)
	// 任务失败也必须释放锁
	assert.True(t, lock.unlocked)
}
