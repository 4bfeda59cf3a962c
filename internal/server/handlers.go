package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"github.com/goliatone/go-intake/pkg/collect"
	"github.com/goliatone/go-intake/pkg/document"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/session"
)

// Form actions posted by the page buttons.
const (
	actionSubmit = "submit"
	actionUpdate = "update"
	actionReset  = "reset"
)

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	_, state := s.session(w, r)
	s.respondPage(w, r, http.StatusOK, render.RenderOptions{
		Values: state.Values(),
		Errors: state.Errors(),
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	action := r.PostForm.Get("action")
	switch action {
	case actionReset:
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			s.sessions.Delete(cookie.Value)
		}
		s.clearCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case actionSubmit, actionUpdate, "":
	default:
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusBadRequest)
		return
	}

	values, err := collect.FromForm(r.PostForm, *s.form)
	if err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	id, _ := s.session(w, r)
	state := session.NewState(values, nil)
	s.store(r, id, state)

	if action != actionSubmit {
		s.respondPage(w, r, http.StatusOK, render.RenderOptions{Values: values})
		return
	}
	s.submit(w, r, id, state)
}

// submit binds the stored answers, generates the summary and streams it back.
// Validation failures and generation failures re-render the page with the
// answers intact so the user can correct them and retry.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, id string, state *session.State) {
	values := state.Values()

	var artifact document.Artifact
	rec, err := collect.Bind(values)
	if err != nil {
		err = mergeValidation(err, rec.Validate())
	} else {
		artifact, err = s.generator.Submit(r.Context(), rec)
	}

	var verr *record.ValidationError
	switch {
	case err == nil:
		state.SetErrors(nil)
		s.store(r, id, state)
		writeArtifact(w, artifact)
	case errors.As(err, &verr):
		mapping := render.MapErrors(*s.form, err)
		state.SetErrors(mapping.Fields)
		s.store(r, id, state)
		s.respondPage(w, r, http.StatusUnprocessableEntity, render.RenderOptions{
			Values:     values,
			Errors:     mapping.Fields,
			FormErrors: mapping.Form,
		})
	case errors.Is(err, context.Canceled):
		hlog.FromRequest(r).Debug().Msg("client went away before the summary was ready")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("summary generation failed")
		s.respondPage(w, r, http.StatusInternalServerError, render.RenderOptions{
			Values: values,
			Banner: &render.Banner{Kind: render.BannerError, Message: "Error: " + failureDetail(err)},
		})
	}
}

func writeArtifact(w http.ResponseWriter, artifact document.Artifact) {
	header := w.Header()
	header.Set("Content-Type", artifact.ContentType)
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	header.Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	header.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

func (s *Server) respondPage(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions) {
	opts.TaxYear = s.cfg.Document.TaxYear
	body, err := s.page.Render(r.Context(), *s.form, opts)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render page")
		http.Error(w, "unable to render the intake form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.page.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// session resolves the caller's session, starting a new one when the cookie
// is missing or expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *session.State) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if state, err := s.sessions.Get(cookie.Value); err == nil {
			return cookie.Value, state
		}
	}
	id, state := s.sessions.Create(session.NewState(nil, nil))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.sessions.TTL().Seconds()),
	})
	return id, state
}

func (s *Server) store(r *http.Request, id string, state *session.State) {
	if err := s.sessions.Save(id, state); err != nil {
		// Expired between lookup and save: the next request starts over.
		hlog.FromRequest(r).Warn().Err(err).Msg("session not saved")
	}
}

func (s *Server) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// mergeValidation folds the record-level checks into binding errors so the
// page shows every problem at once.
func mergeValidation(bindErr, validateErr error) error {
	var bound *record.ValidationError
	if !errors.As(bindErr, &bound) {
		return bindErr
	}
	var checked *record.ValidationError
	if errors.As(validateErr, &checked) {
		bound.Merge(checked)
	}
	return bound
}

// failureDetail extracts the underlying cause of a generation failure.
func failureDetail(err error) string {
	var genErr *document.GenerationError
	if errors.As(err, &genErr) && genErr.Err != nil {
		return genErr.Err.Error()
	}
	return err.Error()
}
