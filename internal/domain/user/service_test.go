package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeRepository 内存仓储(单元测试用)
type fakeRepository struct {
	byEmail    map[string]*User
	byUsername map[string]*User
	nextID     uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail:    make(map[string]*User),
		byUsername: make(map[string]*User),
		nextID:     1,
	}
}

func (r *fakeRepository) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	if _, ok := r.byUsername[u.Username]; ok {
		return apperrors.ErrUsernameDuplicate
	}
	u.ID = r.nextID
	r.nextID++
	r.byEmail[u.Email] = u
	r.byUsername[u.Username] = u
	return nil
}

func (r *fakeRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

// TestRegister 测试用户注册
func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		u, err := svc.Register(ctx, "alice", "alice@example.com", "passw0rd")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.False(t, u.IsAdmin, "新用户不应该是管理员")
		assert.NotEqual(t, "passw0rd", u.Password, "密码应该被加密存储")
	})

	t.Run("邮箱格式不正确", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		invalidEmails := []string{"not-an-email", "a@b", "@example.com", ""}
		for _, email := range invalidEmails {
			_, err := svc.Register(ctx, "alice", email, "passw0rd")
			assert.Error(t, err, "邮箱%q应该被拒绝", email)
		}
	})

	t.Run("用户名不合法", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		invalidNames := []string{"ab", "带中文", "has space", "a!b@c"}
		for _, name := range invalidNames {
			_, err := svc.Register(ctx, name, "alice@example.com", "passw0rd")
			assert.Error(t, err, "用户名%q应该被拒绝", name)
		}
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		weakPasswords := []string{
			"short1",                  // 太短
			"onlyletters",             // 无数字
			"12345678",                // 无字母
			"toolongpassword12345678", // 超过20位
		}
		for _, pwd := range weakPasswords {
			_, err := svc.Register(ctx, "alice", "alice@example.com", pwd)
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码%q应该被拒绝", pwd)
		}
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.Register(ctx, "alice", "alice@example.com", "passw0rd")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice2", "alice@example.com", "passw0rd")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("用户名重复", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.Register(ctx, "alice", "alice@example.com", "passw0rd")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "alice2@example.com", "passw0rd")
		assert.ErrorIs(t, err, apperrors.ErrUsernameDuplicate)
	})
}

// TestLogin 测试用户登录
func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "passw0rd")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "passw0rd")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrongpwd1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "passw0rd")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
