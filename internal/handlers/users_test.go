package handlers

import (
	"net/http"
	"testing"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireToken(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/admin/listings", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRejectPlainUsers(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "regular", models.RoleUser)

	w := env.do(t, http.MethodGet, "/api/v1/admin/listings", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestModeratorCannotDeleteAdminOverHTTP(t *testing.T) {
	env := setupEnv(t)
	_, modToken := env.createUser(t, "mod", models.RoleModerator)
	admin, _ := env.createUser(t, "boss", models.RoleAdmin)

	w := env.do(t, http.MethodDelete, "/api/v1/admin/users/2", modToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	var still models.User
	require.NoError(t, env.db.First(&still, admin.ID).Error)
}

func TestAdminDeletesUserOverHTTP(t *testing.T) {
	env := setupEnv(t)
	_, adminToken := env.createUser(t, "boss", models.RoleAdmin)
	target, _ := env.createUser(t, "spammer", models.RoleUser)

	w := env.do(t, http.MethodDelete, "/api/v1/admin/users/2", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", target.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestBannedUserTokenRejected(t *testing.T) {
	env := setupEnv(t)
	user, token := env.createUser(t, "troll", models.RoleAdmin)
	require.NoError(t, env.db.Model(user).Update("banned", true).Error)

	w := env.do(t, http.MethodGet, "/api/v1/admin/listings", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}
