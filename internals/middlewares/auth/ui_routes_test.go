package auth

import (
	"testing"

	"cra_backend/internals/constants"
)

func TestMatchUIRoute(t *testing.T) {
	cases := map[string]string{
		"/admin":                 "/admin",
		"/admin/":                "/admin",
		"/admin/usuarios/123":    "/admin/usuarios",
		"/administrativo":        "/",
		"/agendamentos/importar": "/agendamentos/importar",
		"/nao-existe":            "/",
		"":                       "/",
	}
	for in, want := range cases {
		r, ok := MatchUIRoute(in)
		if !ok || r.Path != want {
			t.Errorf("MatchUIRoute(%q) = %q, want %q", in, r.Path, want)
		}
	}
}

func TestCheckRouteAccess(t *testing.T) {
	t.Run("atendente redirected home from admin", func(t *testing.T) {
		got := CheckRouteAccess(session(constants.RoleAtendente), "/admin")
		if got.Allowed || got.Decision != Denied || got.Redirect != HomeRedirect {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("unauthenticated redirected to login", func(t *testing.T) {
		got := CheckRouteAccess(nil, "/agendamentos")
		if got.Allowed || got.Redirect != LoginRedirect {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("login page is public", func(t *testing.T) {
		if got := CheckRouteAccess(nil, "/login"); !got.Allowed {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("super admin reaches owner pages", func(t *testing.T) {
		got := CheckRouteAccess(session(constants.RoleSuperAdmin), "/admin/unidades")
		if !got.Allowed || got.Decision != Granted {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("admin cannot reach owner pages", func(t *testing.T) {
		if got := CheckRouteAccess(session(constants.RoleAdmin), "/admin/unidades"); got.Allowed {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("missing profile on desk page warns", func(t *testing.T) {
		got := CheckRouteAccess(noProfile(), "/agendamentos")
		if !got.Allowed || got.Decision != Indeterminate || got.Warning == "" {
			t.Fatalf("got %+v", got)
		}
	})
	t.Run("missing profile on archive page is denied", func(t *testing.T) {
		got := CheckRouteAccess(noProfile(), "/admin/arquivamento")
		if got.Allowed || got.Redirect != HomeRedirect {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestVisibleMenu(t *testing.T) {
	paths := func(rs []UIRoute) map[string]bool {
		m := map[string]bool{}
		for _, r := range rs {
			m[r.Path] = true
		}
		return m
	}

	atendente := paths(VisibleMenu(session(constants.RoleAtendente)))
	if atendente["/admin"] || atendente["/atendentes"] || atendente["/agendamentos/importar"] {
		t.Errorf("atendente sees admin entries: %v", atendente)
	}
	if !atendente["/agendamentos"] || !atendente["/dashboard"] {
		t.Errorf("atendente misses desk entries: %v", atendente)
	}

	super := paths(VisibleMenu(session(constants.RoleSuperAdmin)))
	for _, r := range UIRoutes {
		if r.Menu && !super[r.Path] {
			t.Errorf("super admin misses %s", r.Path)
		}
	}

	if len(VisibleMenu(nil)) != 0 {
		t.Error("anonymous menu must be empty")
	}
}
