package auth

import (
	"strings"

	"cra_backend/internals/constants"
	helperAuth "cra_backend/internals/helpers/auth"
)

// UIRoute is a page of the web client. The client asks the API whether a page
// is reachable and which menu entries to show, so the table lives here.
type UIRoute struct {
	Path   string   `json:"path"`
	Label  string   `json:"label"`
	Roles  []string `json:"roles,omitempty"`
	Policy Policy   `json:"-"`
	Menu   bool     `json:"-"`
	Public bool     `json:"-"`
}

var UIRoutes = []UIRoute{
	{Path: "/login", Label: "Entrar", Public: true},
	{Path: "/", Label: "Início", Policy: AllowWithWarning, Menu: true},
	{Path: "/agendamentos", Label: "Agendamentos", Roles: constants.DeskRoles, Policy: AllowWithWarning, Menu: true},
	{Path: "/agendamentos/importar", Label: "Importar planilha", Roles: constants.IntakeRoles, Policy: DenyMissingProfile, Menu: true},
	{Path: "/historico", Label: "Histórico", Roles: constants.DeskRoles, Policy: AllowWithWarning, Menu: true},
	{Path: "/dashboard", Label: "Dashboard", Roles: constants.DeskRoles, Policy: AllowWithWarning, Menu: true},
	{Path: "/atendentes", Label: "Atendentes", Roles: constants.AdminOnly, Policy: DenyMissingProfile, Menu: true},
	{Path: "/admin", Label: "Administração", Roles: constants.AdminOnly, Policy: DenyMissingProfile, Menu: true},
	{Path: "/admin/usuarios", Label: "Usuários", Roles: constants.AdminOnly, Policy: DenyMissingProfile},
	{Path: "/admin/arquivamento", Label: "Arquivamento", Roles: constants.AdminOnly, Policy: DenyMissingProfile},
	{Path: "/admin/unidades", Label: "Unidades", Roles: constants.SuperAdminOnly, Policy: DenyMissingProfile},
	{Path: "/configuracoes", Label: "Configurações", Policy: AllowWithWarning, Menu: true},
}

type RouteAccess struct {
	Path     string                  `json:"path"`
	Route    string                  `json:"route,omitempty"`
	State    helperAuth.SessionState `json:"state"`
	Decision Decision                `json:"decision"`
	Allowed  bool                    `json:"allowed"`
	Redirect string                  `json:"redirect,omitempty"`
	Warning  string                  `json:"warning,omitempty"`
}

// MatchUIRoute returns the most specific route whose path prefixes p.
func MatchUIRoute(p string) (UIRoute, bool) {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	var best UIRoute
	found := false
	for _, r := range UIRoutes {
		if r.Path == p || (r.Path != "/" && strings.HasPrefix(p, r.Path+"/")) || r.Path == "/" {
			if !found || len(r.Path) > len(best.Path) {
				best, found = r, true
			}
		}
	}
	return best, found
}

// CheckRouteAccess applies the gate rules to a UI path.
func CheckRouteAccess(s *helperAuth.Session, path string) RouteAccess {
	out := RouteAccess{Path: path, State: s.State()}
	r, _ := MatchUIRoute(path)
	out.Route = r.Path

	if r.Public {
		out.Decision, out.Allowed = Granted, true
		return out
	}
	if out.State == helperAuth.StateUnauthenticated {
		out.Decision, out.Redirect = Denied, LoginRedirect
		return out
	}
	out.Decision = Decide(s, r.Roles)
	out.Allowed = r.Policy.Admit(out.Decision)
	if out.Decision == Indeterminate && out.Allowed {
		out.Warning = "perfil não encontrado"
	}
	if !out.Allowed {
		out.Redirect = HomeRedirect
	}
	return out
}

// VisibleMenu lists the menu entries the session may open.
func VisibleMenu(s *helperAuth.Session) []UIRoute {
	out := make([]UIRoute, 0, len(UIRoutes))
	if s.State() == helperAuth.StateUnauthenticated {
		return out
	}
	for _, r := range UIRoutes {
		if r.Menu && r.Policy.Admit(Decide(s, r.Roles)) {
			out = append(out, r)
		}
	}
	return out
}
