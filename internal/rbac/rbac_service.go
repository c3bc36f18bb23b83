package rbac

import (
	"github.com/casbin/casbin/v2"
)

// EnforceRequest asks whether a role may perform an action on a resource.
// Roles are the fixed organizational set (employee, manager, coordinator);
// ownership checks (assigned manager, request owner) stay in the services.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService(modelPath, policyPath string) (Service, error) {
	enforcer, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
