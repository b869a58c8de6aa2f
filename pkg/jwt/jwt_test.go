package jwt

import (
	"testing"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// TestGenerateAndParseToken 测试Token生成与解析
func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "alice", true)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应该为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("期望有效期%d秒，实际%d秒", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("期望UserID=42，实际%d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("期望Username=alice，实际%s", claims.Username)
	}
	if !claims.IsAdmin {
		t.Error("is_admin标记应该随Token下发")
	}
	if claims.Issuer != "library" {
		t.Errorf("期望Issuer=library，实际%s", claims.Issuer)
	}
}

// TestParseToken_Expired 测试过期Token
func TestParseToken_Expired(t *testing.T) {
	// 有效期为负，生成即过期
	m := NewManager("test-secret", -time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "alice", false)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m.ParseToken(pair.AccessToken)
	if err != apperrors.ErrTokenExpired {
		t.Errorf("期望ErrTokenExpired，实际%v", err)
	}
}

// TestParseToken_WrongSecret 测试密钥不匹配
func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", 2*time.Hour, 7*24*time.Hour)
	m2 := NewManager("secret-two", 2*time.Hour, 7*24*time.Hour)

	pair, err := m1.GenerateToken(1, "alice", false)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m2.ParseToken(pair.AccessToken)
	if err != apperrors.ErrInvalidToken {
		t.Errorf("期望ErrInvalidToken，实际%v", err)
	}
}

// TestParseToken_Garbage 测试格式非法的Token
func TestParseToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ParseToken(token)
		if err != apperrors.ErrInvalidToken {
			t.Errorf("Token%q期望ErrInvalidToken，实际%v", token, err)
		}
	}
}

// TestRefreshAccessToken 测试Token刷新
func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "alice", true)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newToken, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newToken)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("期望UserID=42，实际%d", claims.UserID)
	}
}
