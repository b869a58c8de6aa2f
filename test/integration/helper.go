package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试目标是运行中的本地服务(cmd/api),服务未启动时跳过整个用例

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	CoverPage       string `json:"coverPage"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publicationDate"`
	Bio             string `json:"bio"`
	Available       bool   `json:"available"`
	Holder          string `json:"holder"`
}

// TrendingItem 热门榜单条目
type TrendingItem struct {
	Title        string `json:"title"`
	CoverPage    string `json:"coverPage"`
	ReadersCount int64  `json:"readersCount"`
}

// LoanData 在借图书条目
type LoanData struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	CoverPage   string `json:"coverPage"`
	Author      string `json:"author"`
	CheckInDate string `json:"checkInDate"`
}

// RequireServer 服务未启动时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("本地服务未启动，跳过集成测试: %v", err)
	}
	defer resp.Body.Close()
}

// doJSON 发送请求并解析JSON响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestUsername 生成唯一的测试用户名
// 重复运行时避免用户名冲突
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()%1_000_000_000)
}

// RegisterTestUser 注册测试用户并返回Token
// 封装注册+登录流程,测试代码只关注业务场景
func RegisterTestUser(t *testing.T, prefix string) (username string, token string) {
	username = GenerateTestUsername(prefix)
	email := username + "@test.com"

	registerReq := map[string]string{
		"username": username,
		"email":    email,
		"password": "Test1234",
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return username, loginData.AccessToken
}

// AdminToken 管理员Token
// 集成测试环境预置admin账号(is_admin需要手工在库里标记):
//
//	INSERT INTO users ... ; UPDATE users SET is_admin=1 WHERE username='admin';
//
// 账号不存在时跳过依赖管理员的用例
func AdminToken(t *testing.T) string {
	loginReq := map[string]string{
		"email":    "admin@test.com",
		"password": "Admin1234",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	if loginResp.Code != 0 {
		t.Skipf("管理员账号未预置，跳过: %s", loginResp.Message)
	}

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return loginData.AccessToken
}

// CreateTestBook 新增测试图书并返回图书ID(需要管理员Token)
func CreateTestBook(t *testing.T, adminToken string, title string) uint {
	bookReq := map[string]interface{}{
		"title":           title,
		"coverPage":       "https://example.com/cover.jpg",
		"author":          "测试作者",
		"genre":           "测试类别",
		"publicationDate": "2020-01-01",
		"bio":             "集成测试用图书",
	}

	bookResp := PostJSON(t, BaseURL+"/books/create", bookReq, adminToken)
	require.Equal(t, 0, bookResp.Code, "新增图书失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}
