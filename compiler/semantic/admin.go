package semantic

import (
	"errors"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
)

// The account and cluster statements are global: they never touch the
// working space and may run before USE.

type createUserValidator struct {
	base
	stmt *ast.CreateUserStmt
}

func newCreateUserValidator(stmt *ast.CreateUserStmt, qctx *QueryContext) *createUserValidator {
	v := &createUserValidator{stmt: stmt}
	v.base = newBase(qctx, StCreateUser, true)
	return v
}

func (v *createUserValidator) validate() error {
	if v.stmt.User == "" {
		return semanticErrorf("user name must not be empty")
	}
	return nil
}

type dropUserValidator struct {
	base
	stmt *ast.DropUserStmt
}

func newDropUserValidator(stmt *ast.DropUserStmt, qctx *QueryContext) *dropUserValidator {
	v := &dropUserValidator{stmt: stmt}
	v.base = newBase(qctx, StDropUser, true)
	return v
}

func (v *dropUserValidator) validate() error {
	if v.stmt.User == "" {
		return semanticErrorf("user name must not be empty")
	}
	return nil
}

type alterUserValidator struct {
	base
	stmt *ast.AlterUserStmt
}

func newAlterUserValidator(stmt *ast.AlterUserStmt, qctx *QueryContext) *alterUserValidator {
	v := &alterUserValidator{stmt: stmt}
	v.base = newBase(qctx, StAlterUser, true)
	return v
}

func (v *alterUserValidator) validate() error {
	if v.stmt.User == "" {
		return semanticErrorf("user name must not be empty")
	}
	return nil
}

type changePasswordValidator struct {
	base
	stmt *ast.ChangePasswordStmt
}

func newChangePasswordValidator(stmt *ast.ChangePasswordStmt, qctx *QueryContext) *changePasswordValidator {
	v := &changePasswordValidator{stmt: stmt}
	v.base = newBase(qctx, StChangePassword, true)
	return v
}

func (v *changePasswordValidator) validate() error {
	s := v.stmt
	if s.User == "" {
		return semanticErrorf("user name must not be empty")
	}
	if s.NewPassword == s.OldPassword {
		return semanticErrorf("new password must differ from the old password")
	}
	return nil
}

// roleValidator is the shared body of GRANT ROLE and REVOKE ROLE.
type roleValidator struct {
	base
	user  string
	space string
	role  ast.RoleKind
	grant bool
}

func newGrantRoleValidator(stmt *ast.GrantRoleStmt, qctx *QueryContext) *roleValidator {
	v := &roleValidator{user: stmt.User, space: stmt.Space, role: stmt.Role, grant: true}
	v.base = newBase(qctx, StGrantRole, true)
	return v
}

func newRevokeRoleValidator(stmt *ast.RevokeRoleStmt, qctx *QueryContext) *roleValidator {
	v := &roleValidator{user: stmt.User, space: stmt.Space, role: stmt.Role}
	v.base = newBase(qctx, StRevokeRole, true)
	return v
}

func (v *roleValidator) validate() error {
	if v.user == "" {
		return semanticErrorf("user name must not be empty")
	}
	if v.space == "" {
		return semanticErrorf("role statements require a space name")
	}
	// GOD is bound to the cluster root account and cannot be granted or
	// revoked per space.
	if v.role == ast.RoleGod {
		verb := "revoked"
		if v.grant {
			verb = "granted"
		}
		return semanticErrorf("role GOD cannot be %s", verb)
	}
	if _, err := v.qctx.Schema().GetSpace(v.space); errors.Is(err, schema.ErrNotFound) {
		return semanticErrorf("space %q does not exist", v.space)
	}
	return nil
}

// snapshotValidator serves CREATE SNAPSHOT and DROP SNAPSHOT.
type snapshotValidator struct {
	base
	name string
}

func newSnapshotValidator(stype StatementType, name string, qctx *QueryContext) *snapshotValidator {
	v := &snapshotValidator{name: name}
	v.base = newBase(qctx, stype, true)
	return v
}

func (v *snapshotValidator) validate() error {
	if v.stype == StDropSnapshot && v.name == "" {
		return semanticErrorf("snapshot name must not be empty")
	}
	return nil
}

type balanceValidator struct {
	base
	stmt *ast.BalanceStmt
}

func newBalanceValidator(stmt *ast.BalanceStmt, qctx *QueryContext) *balanceValidator {
	v := &balanceValidator{stmt: stmt}
	v.base = newBase(qctx, StBalance, true)
	return v
}

func (v *balanceValidator) validate() error {
	v.outputs = []ColumnDef{{Name: "Job Id", Type: volta.TypeInt64}}
	return nil
}

// configModules names the subsystems whose configs can be read and set.
var configModules = map[string]bool{
	"GRAPH":   true,
	"META":    true,
	"STORAGE": true,
}

type setConfigValidator struct {
	base
	stmt *ast.SetConfigStmt
}

func newSetConfigValidator(stmt *ast.SetConfigStmt, qctx *QueryContext) *setConfigValidator {
	v := &setConfigValidator{stmt: stmt}
	v.base = newBase(qctx, StSetConfig, true)
	return v
}

func (v *setConfigValidator) validate() error {
	s := v.stmt
	if err := checkConfigName(s.Module, s.Name); err != nil {
		return err
	}
	e, err := v.checkExpr(s.Value)
	if err != nil {
		return err
	}
	if e == nil {
		return semanticErrorf("UPDATE CONFIGS requires a value")
	}
	if !ast.IsConstant(e) {
		return semanticErrorf("config value must be a constant, got %s", ast.Format(e))
	}
	if _, err := EvalConst(e); err != nil {
		return err
	}
	return nil
}

type getConfigValidator struct {
	base
	stmt *ast.GetConfigStmt
}

func newGetConfigValidator(stmt *ast.GetConfigStmt, qctx *QueryContext) *getConfigValidator {
	v := &getConfigValidator{stmt: stmt}
	v.base = newBase(qctx, StGetConfig, true)
	return v
}

func (v *getConfigValidator) validate() error {
	if err := checkConfigName(v.stmt.Module, v.stmt.Name); err != nil {
		return err
	}
	v.outputs = []ColumnDef{
		{Name: "module", Type: volta.TypeString},
		{Name: "name", Type: volta.TypeString},
		{Name: "value", Type: volta.TypeString},
	}
	return nil
}

func checkConfigName(module, name string) error {
	if module != "" && !configModules[module] {
		return semanticErrorf("unknown config module %q", module)
	}
	if name == "" {
		return semanticErrorf("config name must not be empty")
	}
	return nil
}
