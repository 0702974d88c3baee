package handlers

import (
	"net/http"
	"strconv"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// UserAdminHandler exposes the admin user-management screen: listing,
// role changes behind code verification, bans and deletes.
type UserAdminHandler struct {
	userAdmin *services.UserAdminService
}

func NewUserAdminHandler(userAdmin *services.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{userAdmin: userAdmin}
}

type RoleChangeRequest struct {
	Role string `json:"role" binding:"required" example:"moderator"`
}

type RoleChangeResponse struct {
	VerificationID string `json:"verification_id,omitempty"`
	Message        string `json:"message"`
}

type ConfirmRoleChangeRequest struct {
	VerificationID string `json:"verification_id" binding:"required"`
	Code           string `json:"code" binding:"required,len=6" example:"042137"`
}

type BanRequest struct {
	Reason string `json:"reason" binding:"required,min=3" example:"spam listings"`
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} User
// @Router       /api/v1/admin/users [get]
func (h *UserAdminHandler) List(c *gin.Context) {
	users, err := h.userAdmin.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ChangeRole godoc
// @Summary      Request a role change
// @Description  Promotions issue a verification code delivered to the target's notification inbox; demotion to user applies immediately
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Target user ID"
// @Param        request body RoleChangeRequest true "Requested role"
// @Success      200 {object} RoleChangeResponse
// @Failure      403 {object} ErrorResponse "moderator targeting an admin, or granting admin"
// @Router       /api/v1/admin/users/{id}/role [post]
func (h *UserAdminHandler) ChangeRole(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	verificationID, err := h.userAdmin.InitiateRoleChange(c.GetUint("user_id"), uint(targetID), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	if verificationID == "" {
		c.JSON(http.StatusOK, RoleChangeResponse{Message: "role updated"})
		return
	}
	c.JSON(http.StatusOK, RoleChangeResponse{
		VerificationID: verificationID,
		Message:        "verification code sent to the target user's notifications",
	})
}

// ConfirmRoleChange godoc
// @Summary      Confirm a role change with the verification code
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ConfirmRoleChangeRequest true "Verification"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "code mismatch; verification stays open"
// @Router       /api/v1/admin/users/role/confirm [post]
func (h *UserAdminHandler) ConfirmRoleChange(c *gin.Context) {
	var req ConfirmRoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.userAdmin.ConfirmRoleChange(c.GetUint("user_id"), req.VerificationID, req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "role updated"})
}

// CancelRoleChange godoc
// @Summary      Abandon a pending role change
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        verification_id path string true "Verification ID"
// @Success      200 {object} MessageResponse
// @Router       /api/v1/admin/users/role/{verification_id} [delete]
func (h *UserAdminHandler) CancelRoleChange(c *gin.Context) {
	if err := h.userAdmin.CancelRoleChange(c.GetUint("user_id"), c.Param("verification_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "verification cancelled"})
}

// Ban godoc
// @Summary      Ban a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Target user ID"
// @Param        request body BanRequest true "Ban reason"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/users/{id}/ban [post]
func (h *UserAdminHandler) Ban(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.userAdmin.Ban(c.GetUint("user_id"), uint(targetID), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user banned"})
}

// Unban godoc
// @Summary      Lift a user ban
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Target user ID"
// @Success      200 {object} MessageResponse
// @Router       /api/v1/admin/users/{id}/unban [post]
func (h *UserAdminHandler) Unban(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.userAdmin.Unban(c.GetUint("user_id"), uint(targetID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user unbanned"})
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Target user ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/users/{id} [delete]
func (h *UserAdminHandler) Delete(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.userAdmin.DeleteUser(c.GetUint("user_id"), uint(targetID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}
