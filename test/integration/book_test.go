package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
//
// 覆盖场景:
// 1. 图书管理(新增/更新/删除,管理员专属)
// 2. 查询(详情/列表/搜索/热门榜单)
// 3. 错误形态(400/403/404)

// TestBookManagement 测试图书管理
func TestBookManagement(t *testing.T) {
	RequireServer(t)

	adminToken := AdminToken(t)
	_, readerToken := RegisterTestUser(t, "book_reader")

	t.Run("管理员新增图书", func(t *testing.T) {
		bookReq := map[string]interface{}{
			"title":           "《Go语言实战》",
			"coverPage":       "https://example.com/go.jpg",
			"author":          "William Kennedy",
			"genre":           "技术",
			"publicationDate": "2017-03-01",
			"bio":             "Go语言入门经典",
		}

		resp := PostJSON(t, BaseURL+"/books/create", bookReq, adminToken)
		require.Equal(t, 0, resp.Code, "新增应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID)
		assert.True(t, data.Available, "新书应该在馆")
		assert.Empty(t, data.Holder)

		t.Logf("✓ 新增成功，图书ID: %d", data.ID)
	})

	t.Run("普通用户不能新增", func(t *testing.T) {
		bookReq := map[string]interface{}{
			"title":           "《测试图书》",
			"coverPage":       "https://example.com/cover.jpg",
			"author":          "测试作者",
			"genre":           "测试",
			"publicationDate": "2020-01-01",
		}

		resp := PostJSON(t, BaseURL+"/books/create", bookReq, readerToken)
		assert.NotEqual(t, 0, resp.Code, "普通用户应该被拒绝")

		t.Logf("✓ 普通用户正确被拒绝: %s", resp.Message)
	})

	t.Run("必填字段缺失", func(t *testing.T) {
		bookReq := map[string]interface{}{
			"title": "《只有书名》",
		}

		resp := PostJSON(t, BaseURL+"/books/create", bookReq, adminToken)
		assert.NotEqual(t, 0, resp.Code, "缺少必填字段应该失败")

		t.Logf("✓ 缺失字段正确被拒绝: %s", resp.Message)
	})

	t.Run("更新图书保留空字段", func(t *testing.T) {
		bookID := CreateTestBook(t, adminToken, "《更新前》")

		// 只更新作者
		updateReq := map[string]interface{}{
			"author": "新作者",
		}

		resp := PostJSON(t, fmt.Sprintf("%s/books/update/%d", BaseURL, bookID), updateReq, adminToken)
		require.Equal(t, 0, resp.Code, "更新应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, "《更新前》", data.Title, "未传的字段应该保留原值")
		assert.Equal(t, "新作者", data.Author)

		t.Logf("✓ 部分更新语义正确")
	})

	t.Run("删除图书", func(t *testing.T) {
		bookID := CreateTestBook(t, adminToken, "《待删除》")

		resp := DeleteJSON(t, fmt.Sprintf("%s/books/delete/%d", BaseURL, bookID), adminToken)
		require.Equal(t, 0, resp.Code, "删除应该成功: %s", resp.Message)

		// 删除后查询返回404语义
		getResp := GetJSON(t, fmt.Sprintf("%s/books/getbook/%d", BaseURL, bookID), readerToken)
		assert.NotEqual(t, 0, getResp.Code, "删除后的图书不应该再查到")

		t.Logf("✓ 删除成功，再查询返回: %s", getResp.Message)
	})
}

// TestBookQueries 测试图书查询
func TestBookQueries(t *testing.T) {
	RequireServer(t)

	adminToken := AdminToken(t)
	_, readerToken := RegisterTestUser(t, "book_query")

	bookID := CreateTestBook(t, adminToken, "《查询测试图书》")

	t.Run("图书详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/getbook/%d", BaseURL, bookID), readerToken)
		require.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, "《查询测试图书》", data.Title)
	})

	t.Run("ID格式非法", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/getbook/abc", readerToken)
		assert.NotEqual(t, 0, resp.Code, "非数字ID应该失败")

		t.Logf("✓ 非法ID正确被拒绝: %s", resp.Message)
	})

	t.Run("图书不存在", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/getbook/99999999", readerToken)
		assert.NotEqual(t, 0, resp.Code, "不存在的图书应该返回错误")
	})

	t.Run("图书列表", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/getbooks", readerToken)
		require.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var books []BookData
		err := json.Unmarshal(resp.Data, &books)
		require.NoError(t, err)
		assert.NotEmpty(t, books, "列表应该包含刚新增的图书")

		t.Logf("✓ 列表返回 %d 本图书", len(books))
	})

	t.Run("书名搜索命中", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search/查询测试", readerToken)
		require.Equal(t, 0, resp.Code, "搜索应该成功: %s", resp.Message)

		var books []BookData
		err := json.Unmarshal(resp.Data, &books)
		require.NoError(t, err)
		assert.NotEmpty(t, books)
	})

	t.Run("搜索零命中返回错误", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search/绝对不存在的书名片段xyz", readerToken)
		assert.NotEqual(t, 0, resp.Code, "零命中应该返回错误而不是空列表")

		t.Logf("✓ 零命中正确返回: %s", resp.Message)
	})

	t.Run("热门榜单最多5条", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/trending", readerToken)
		require.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var items []TrendingItem
		err := json.Unmarshal(resp.Data, &items)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(items), 5, "榜单最多5条")

		// 按借阅次数降序
		for i := 1; i < len(items); i++ {
			assert.GreaterOrEqual(t, items[i-1].ReadersCount, items[i].ReadersCount,
				"榜单应该按借阅次数降序")
		}

		t.Logf("✓ 榜单返回 %d 条", len(items))
	})

	t.Run("未登录不能查询", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/getbooks", "")
		assert.NotEqual(t, 0, resp.Code, "未登录应该被拒绝")
	})
}
