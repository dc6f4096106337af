package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 卖家控制台预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "catalog",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/variant-space", Action: "*"},
				{Object: "/admin/products/:id/variants/:variant_id/stock", Action: "PATCH"},
				{Object: "/admin/products/variant-preview", Action: "POST"},
				{Object: "/admin/products/variant-session/step", Action: "POST"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/lead-time-templates", Action: "*"},
				{Object: "/admin/lead-time-templates/:id", Action: "*"},
				{Object: "/admin/lead-time-templates/reconcile", Action: "POST"},
				{Object: "/admin/lead-time-templates/apply", Action: "POST"},
				{Object: "/admin/lead-time-templates/confirm", Action: "POST"},
				{Object: "/admin/upload", Action: "POST"},
				{Object: "/admin/upload/batch", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "finance",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/reports/*", Action: "GET"},
				{Object: "/admin/reports/export", Action: "POST"},
				{Object: "/admin/payouts", Action: "*"},
				{Object: "/admin/payouts/:id", Action: "*"},
				{Object: "/admin/payouts/:id/settle", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
