package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAdminService implements the admin user-management operations:
// role changes gated by an out-of-band verification code, bans and
// deletes, all behind the moderator-vs-admin authorization guard.
type UserAdminService struct {
	db            *gorm.DB
	notifications *NotificationService

	mu      sync.Mutex
	pending map[string]*roleChangeVerification
}

// roleChangeVerification lives only between initiation and
// confirmation or cancellation of a promotion dialog.
type roleChangeVerification struct {
	initiatorID   uint
	targetID      uint
	requestedRole string
	code          string
	createdAt     time.Time
}

func NewUserAdminService(db *gorm.DB, notifications *NotificationService) *UserAdminService {
	return &UserAdminService{
		db:            db,
		notifications: notifications,
		pending:       make(map[string]*roleChangeVerification),
	}
}

func (s *UserAdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// guard enforces the authorization hierarchy before any mutation:
// a moderator may never touch an admin and may never grant the admin
// role. Admins are unrestricted.
func (s *UserAdminService) guard(actor *models.User, target *models.User, requestedRole string) error {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleModerator {
		return ErrUnauthorized
	}
	if actor.Role == models.RoleModerator {
		if target.Role == models.RoleAdmin {
			return ErrUnauthorized
		}
		if requestedRole == models.RoleAdmin {
			return ErrUnauthorized
		}
	}
	return nil
}

func (s *UserAdminService) loadPair(actorID, targetID uint) (*models.User, *models.User, error) {
	var actor models.User
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return nil, nil, ErrNotFound
	}
	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		return nil, nil, ErrNotFound
	}
	return &actor, &target, nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// InitiateRoleChange starts a promotion to moderator or admin. The
// code is written into the target's notification inbox; the operator
// has to read it there, it is never returned to the initiator.
// Demotion to the base role skips verification and applies at once.
func (s *UserAdminService) InitiateRoleChange(actorID, targetID uint, requestedRole string) (string, error) {
	if requestedRole != models.RoleUser && requestedRole != models.RoleModerator && requestedRole != models.RoleAdmin {
		return "", ErrInvalidInput
	}

	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return "", err
	}
	if err := s.guard(actor, target, requestedRole); err != nil {
		return "", err
	}
	if target.Role == requestedRole {
		return "", errors.New("user already has this role")
	}

	if requestedRole == models.RoleUser {
		if err := s.db.Model(target).Update("role", models.RoleUser).Error; err != nil {
			return "", err
		}
		s.notifications.Notify(target.ID, models.NotificationTypeRoleChange,
			"Rol değişikliği", "Hesabınızın rolü kullanıcı olarak güncellendi.", "")
		return "", nil
	}

	code, err := generateVerificationCode()
	if err != nil {
		return "", err
	}

	verificationID := uuid.NewString()
	s.mu.Lock()
	s.pending[verificationID] = &roleChangeVerification{
		initiatorID:   actorID,
		targetID:      targetID,
		requestedRole: requestedRole,
		code:          code,
		createdAt:     time.Now(),
	}
	s.mu.Unlock()

	s.notifications.Notify(target.ID, models.NotificationTypeRoleChange,
		"Rol değişikliği onayı",
		fmt.Sprintf("Hesabınız için %s rolü talep edildi. Onay kodu: %s", requestedRole, code), "")

	return verificationID, nil
}

// ConfirmRoleChange applies the role iff the entered code is exactly
// the issued one. A mismatch keeps the verification open; retries are
// unlimited.
func (s *UserAdminService) ConfirmRoleChange(actorID uint, verificationID, enteredCode string) error {
	s.mu.Lock()
	v, ok := s.pending[verificationID]
	if !ok || v.initiatorID != actorID {
		s.mu.Unlock()
		return ErrNotFound
	}
	if enteredCode != v.code {
		s.mu.Unlock()
		return ErrCodeMismatch
	}
	delete(s.pending, verificationID)
	s.mu.Unlock()

	actor, target, err := s.loadPair(v.initiatorID, v.targetID)
	if err != nil {
		return err
	}
	// Re-check: roles may have changed while the dialog was open.
	if err := s.guard(actor, target, v.requestedRole); err != nil {
		return err
	}

	if err := s.db.Model(target).Update("role", v.requestedRole).Error; err != nil {
		return err
	}

	s.notifications.Notify(target.ID, models.NotificationTypeRoleChange,
		"Rol değişikliği tamamlandı",
		fmt.Sprintf("Hesabınızın rolü %s olarak güncellendi.", v.requestedRole), "")

	return nil
}

// CancelRoleChange abandons an open verification. No mutation happens.
func (s *UserAdminService) CancelRoleChange(actorID uint, verificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.pending[verificationID]
	if !ok || v.initiatorID != actorID {
		return ErrNotFound
	}
	delete(s.pending, verificationID)
	return nil
}

func (s *UserAdminService) Ban(actorID, targetID uint, reason string) error {
	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}
	if err := s.guard(actor, target, ""); err != nil {
		return err
	}
	if target.Banned {
		return errors.New("user is already banned")
	}

	now := time.Now()
	err = s.db.Model(target).Updates(map[string]interface{}{
		"banned":     true,
		"ban_reason": reason,
		"banned_at":  &now,
	}).Error
	if err != nil {
		return err
	}

	s.notifications.Notify(target.ID, models.NotificationTypeBan,
		"Hesabınız askıya alındı", "Sebep: "+reason, "")
	return nil
}

func (s *UserAdminService) Unban(actorID, targetID uint) error {
	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}
	if err := s.guard(actor, target, ""); err != nil {
		return err
	}
	if !target.Banned {
		return errors.New("user is not banned")
	}

	err = s.db.Model(target).Updates(map[string]interface{}{
		"banned":     false,
		"ban_reason": "",
		"banned_at":  nil,
	}).Error
	if err != nil {
		return err
	}

	s.notifications.Notify(target.ID, models.NotificationTypeBan,
		"Hesabınız yeniden aktif", "Hesabınızın askıya alınması kaldırıldı.", "")
	return nil
}

func (s *UserAdminService) DeleteUser(actorID, targetID uint) error {
	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return err
	}
	if err := s.guard(actor, target, ""); err != nil {
		return err
	}

	return s.db.Delete(target).Error
}
