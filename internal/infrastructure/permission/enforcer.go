// Package permission manages the administrator role. Administrators bypass
// per-event access entries; the role grant itself lives in casbin with a
// gorm-backed policy store.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"vigil/internal/shared/logger"
)

const AdminRole = "admin"

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}
	if err := e.ensureAdminPolicy(); err != nil {
		return nil, err
	}
	return e, nil
}

// ensureAdminPolicy seeds the admin role's blanket grant on first start.
func (e *Enforcer) ensureAdminPolicy() error {
	has, err := e.enforcer.HasPolicy(AdminRole, "*", "*")
	if err != nil {
		return fmt.Errorf("failed to inspect policy: %w", err)
	}
	if has {
		return nil
	}
	if _, err := e.enforcer.AddPolicy(AdminRole, "*", "*"); err != nil {
		return fmt.Errorf("failed to seed admin policy: %w", err)
	}
	return e.enforcer.SavePolicy()
}

// IsAdmin reports whether the handle holds the admin role.
func (e *Enforcer) IsAdmin(handle string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roles, err := e.enforcer.GetRolesForUser(handle)
	if err != nil {
		return false, fmt.Errorf("failed to get roles for user: %w", err)
	}
	for _, role := range roles {
		if role == AdminRole {
			return true, nil
		}
	}
	return false, nil
}

func (e *Enforcer) GrantAdmin(handle string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(handle, AdminRole); err != nil {
		e.logger.Errorw("failed to grant admin role", "error", err, "handle", handle)
		return fmt.Errorf("failed to grant admin role: %w", err)
	}

	return e.enforcer.SavePolicy()
}

func (e *Enforcer) RevokeAdmin(handle string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRoleForUser(handle, AdminRole); err != nil {
		e.logger.Errorw("failed to revoke admin role", "error", err, "handle", handle)
		return fmt.Errorf("failed to revoke admin role: %w", err)
	}

	return e.enforcer.SavePolicy()
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
