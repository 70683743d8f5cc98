package storefront

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"storefront/internal/profile"
	"storefront/internal/session"
	"storefront/pkg/kit"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type sessionResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Redirect    string    `json:"redirect"`
}

type logoutResp struct {
	Redirect string `json:"redirect,omitempty"`
}

type meResp struct {
	AccountID string `json:"account_id"`
	profile.Profile
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	out, err := s.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, newSessionResp(out))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	out, err := s.Sessions.Signup(r.Context(), session.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
	})
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, newSessionResp(out))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	out := s.Sessions.Logout(r.Context(), sess)
	kit.WriteJSON(w, http.StatusOK, logoutResp{Redirect: string(out.Redirect)})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	p, err := s.Profiles.Get(r.Context(), sess.AccountID)
	if errors.Is(err, profile.ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "profile not found", nil)
		return
	}
	if err != nil {
		kit.OrNop(s.Log).Error("get profile failed", zap.String("account_id", sess.AccountID), zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, meResp{AccountID: sess.AccountID, Profile: p})
}

func newSessionResp(out session.Outcome) sessionResp {
	return sessionResp{
		AccessToken: out.Session.Token,
		ExpiresAt:   out.Session.ExpiresAt,
		Redirect:    string(out.Redirect),
	}
}
