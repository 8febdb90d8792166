// Package policy evaluates authorization decisions against an embedded Rego
// module.  The module is compiled once; each decision is a single query
// evaluation with no I/O.
package policy

import (
    "context"
    _ "embed"
    "fmt"

    "github.com/open-policy-agent/opa/rego"
)

// Actions understood by the policy.
const (
    ActionTrainCreate       = "train.create"
    ActionTrainUpdate       = "train.update"
    ActionTrainDelete       = "train.delete"
    ActionReservationManage = "reservation.manage"
    ActionLoginActivate     = "login.activate"
    ActionUserCreate        = "user.create"
    ActionUserUpdate        = "user.update"
    ActionUserDelete        = "user.delete"
)

//go:embed authz.rego
var module string

// Subject is the authenticated caller.  UserType is empty when the caller
// has credentials but no user profile.
type Subject struct {
    NIC      string
    UserType string
    IsAdmin  bool
}

// Resource describes the entity being acted on.  Only the fields relevant to
// the action need to be set.
type Resource struct {
    OwnerNIC string // trains
    UserNIC  string // reservations, user profiles

    // UserType is the type a profile is created with.
    UserType string
    // Privileged marks a profile update touching user_type or is_active.
    Privileged bool
}

// Authorizer answers allow/deny questions.
type Authorizer struct {
    query rego.PreparedEvalQuery
}

// New compiles the embedded policy.
func New(ctx context.Context) (*Authorizer, error) {
    q, err := rego.New(
        rego.Query("data.ticketing.authz.allow"),
        rego.Module("authz.rego", module),
    ).PrepareForEval(ctx)
    if err != nil {
        return nil, fmt.Errorf("policy: compile: %w", err)
    }
    return &Authorizer{query: q}, nil
}

// Allow reports whether subject may perform action on resource.
func (a *Authorizer) Allow(ctx context.Context, action string, subject Subject, resource Resource) (bool, error) {
    input := map[string]any{
        "action": action,
        "subject": map[string]any{
            "nic":       subject.NIC,
            "user_type": subject.UserType,
            "is_admin":  subject.IsAdmin,
        },
        "resource": map[string]any{
            "owner_nic":  resource.OwnerNIC,
            "user_nic":   resource.UserNIC,
            "user_type":  resource.UserType,
            "privileged": resource.Privileged,
        },
    }
    rs, err := a.query.Eval(ctx, rego.EvalInput(input))
    if err != nil {
        return false, fmt.Errorf("policy: eval %s: %w", action, err)
    }
    return rs.Allowed(), nil
}
