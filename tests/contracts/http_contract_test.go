package contracts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountApp "github.com/davicafu/hexacms/internal/account/application"
	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	accountHttp "github.com/davicafu/hexacms/internal/account/infra/inbound/http"
	articleApp "github.com/davicafu/hexacms/internal/article/application"
	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
	articleHttp "github.com/davicafu/hexacms/internal/article/infra/inbound/http"
	"github.com/davicafu/hexacms/tests/mocks"
)

// Los clientes del panel dependen exactamente de estas claves.
func keysOf(t *testing.T, raw []byte) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestAccount_HTTPContract(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := mocks.NewInMemoryAccountRepo(accountDomain.RoleUser)
	admins := mocks.NewInMemoryAccountRepo(accountDomain.RoleAdmin)
	service := accountApp.NewAccountService(users, admins, zap.NewNop())

	_, err := service.Create(context.Background(), "ana@example.com", "secreto", "Ana")
	require.NoError(t, err)

	router := gin.New()
	accountHttp.RegisterAccountRoutes(router.Group(""), accountHttp.NewAccountHandler(service))

	w := get(router, "/users/1")
	require.Equal(t, http.StatusOK, w.Code)

	body := keysOf(t, w.Body.Bytes())
	assert.ElementsMatch(t, []string{"id", "email", "name", "created_at", "updated_at"}, mapKeys(body))

	var createdAt time.Time
	require.NoError(t, json.Unmarshal(body["created_at"], &createdAt))
	assert.False(t, createdAt.IsZero())

	w = get(router, "/users?page=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []string{"users", "total", "page", "per_page", "pages"}, mapKeys(keysOf(t, w.Body.Bytes())))

	w = get(router, "/users/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())
}

func TestArticle_HTTPContract(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := mocks.NewInMemoryArticleRepo()
	service := articleApp.NewArticleService(repo, nil, zap.NewNop(), time.Minute)

	_, err := service.Create(context.Background(), 7, articleApp.ArticleInput{Title: "Hola", Content: "Mundo"})
	require.NoError(t, err)

	router := gin.New()
	articleHttp.RegisterUserArticleRoutes(router.Group(""), articleHttp.NewArticleHandler(service, articleDomain.UserListing))

	w := get(router, "/articles/1")
	require.Equal(t, http.StatusOK, w.Code)
	body := keysOf(t, w.Body.Bytes())
	assert.ElementsMatch(t,
		[]string{"id", "title", "content", "status", "tags", "admin_id", "created_at", "updated_at"},
		mapKeys(body))
	assert.JSONEq(t, `[]`, string(body["tags"]))
	assert.JSONEq(t, `"published"`, string(body["status"]))

	w = get(router, "/articles")
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []string{"articles", "total", "page", "per_page", "pages"}, mapKeys(keysOf(t, w.Body.Bytes())))
}

func mapKeys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
